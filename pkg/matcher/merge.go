package matcher

import "github.com/vbo-tools/dadismatch/pkg/records"

// Merge attaches resolved ids to every original record, in original order.
// Records absent from matches, ignored ones included, get a nil id; keys in
// matches that name no record are ignored. The output always has exactly
// one element per input record.
func Merge(recs []records.SourceRecord, matches map[string]*string) []records.AugmentedRecord {
	out := make([]records.AugmentedRecord, len(recs))
	for i, r := range recs {
		out[i].SourceRecord = r
		if id := matches[r.RecordID]; id != nil {
			out[i].TransboundaryID = ptr(*id)
		}
	}
	return out
}
