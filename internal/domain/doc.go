// Package domain models groundwater forecast requests and reports.
//
// # Data Flow
//
// A [PredictionRequest] is turned into a [Prompt] by [BuildPrompt]. The remote
// model answers with JSON text, which [DecodeCandidate] turns into a
// [RawCandidate]. Candidates are untrusted: [Validate] checks that every
// required field is present, and [Sanitize] turns a valid candidate into a
// [PredictionReport] that satisfies the report invariants.
//
// # Report Invariants
//
//	Scores:      every score field is clamped into [0, 100].
//	Series:      historical, predicted, and rainfall series are sorted by year.
//	Continuity:  predicted[0].year == historical[last].year + 1 when both exist.
//	Rainfall:    only years present in the historical series are kept.
//	Location:    LocationName is never empty.
//
// A continuity violation is a hard failure ([KindInconsistentTimeline]); it is
// never repaired.
//
// # Condition Bands
//
// The model labels the current index itself. Unrecognised labels are derived
// from the clamped score:
//
//	Safe: ≥ 60 | Moderate: ≥ 30 | Danger: < 30
//
// Outlook confidence labels follow the same rule:
//
//	High: ≥ 70 | Medium: ≥ 40 | Low: < 40
package domain
