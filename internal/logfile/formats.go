package logfile

// timestampFormats lists the leading-timestamp layouts ParseLine recognises.
var timestampFormats = []string{
	"2006/01/02 15:04:05.000000",
	"2006-01-02 15:04:05,000",
	"2006-01-02 15:04:05.000000",
	"2006/01/02 15:04:05.000",
	"2006/01/02 15:04:05",
	"2006-01-02T15:04:05.000000",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05.000000Z",
	"2006.01.02 15:04:05.000",
	"02/Jan/2006 15:04:05.000",
	"02/Jan/2006:15:04:05 -0700", // common log format
	"2006-01-02 15:04:05-0700",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
	"Mon, 02 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Mon Jan _2 15:04:05 2006",
	"Mon Jan _2 15:04:05 MST 2006",
	"2 Jan 2006 15:04:05",
	"20060102150405",
}

// clfLayout is the timestamp layout inside Common Log Format brackets.
const clfLayout = "02/Jan/2006:15:04:05 -0700"
