package stock

// SummaryRow is the derived stock position of one material. Net is
// start + received - sent: opening balance plus settled purchases minus
// settled sales. Outgoing and Incoming are the pending counterparts, and
// Manual is the absolute override from the newest manual adjustment.
type SummaryRow struct {
	MaterialID string
	Name       string
	Start      int
	Sent       int
	Outgoing   int
	Received   int
	Incoming   int
	Net        int
	Manual     int
}

// Summary sink layout. Materials are columns (starting at SinkMaterialOffset,
// column A holds row labels) and measures are rows, so a growing catalog
// extends the sheet to the right. Rows 1 through 8 are the derived block,
// fully rewritten on every run; row 9 is the manually maintained starting
// balance, which the engine reads but never writes.
const (
	SinkLabelColumn    = 1
	SinkMaterialOffset = 2

	SinkRowID       = 1
	SinkRowName     = 2
	SinkRowSent     = 3
	SinkRowOutgoing = 4
	SinkRowReceived = 5
	SinkRowIncoming = 6
	SinkRowNet      = 7
	SinkRowManual   = 8
	SinkRowStart    = 9
)

// sinkRowLabels are the column-A labels of the derived block, indexed by row.
var sinkRowLabels = map[int]string{
	SinkRowID:       "Material ID",
	SinkRowName:     "Material Name",
	SinkRowSent:     "Sent",
	SinkRowOutgoing: "Outgoing",
	SinkRowReceived: "Received",
	SinkRowIncoming: "Incoming",
	SinkRowNet:      "Net",
	SinkRowManual:   "Manual",
}
