package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/divtrack"
	md "github.com/nao1215/markdown"
)

// recentSnapshotListing bounds the listing of individual snapshot dates.
const recentSnapshotListing = 10

// HistoryMarkdown renders a census of the snapshot store.
func HistoryMarkdown(s divtrack.HistorySummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Saved Snapshots")

	if s.Count == 0 {
		doc.PlainText("No snapshots saved yet. Run `dvt project -save` to record one.")
		return doc.String()
	}

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", ""},
		Rows: [][]string{
			{"Snapshots", fmt.Sprintf("%d", s.Count)},
			{"First", s.First.String()},
			{"Last", s.Last.String()},
		},
	})

	dates := s.Dates
	if len(dates) > recentSnapshotListing {
		dates = dates[len(dates)-recentSnapshotListing:]
	}
	doc.H2(fmt.Sprintf("Most Recent (%d)", len(dates)))
	list := make([]string, 0, len(dates))
	for i := len(dates) - 1; i >= 0; i-- {
		list = append(list, dates[i].String())
	}
	doc.BulletList(list...)

	return doc.String()
}
