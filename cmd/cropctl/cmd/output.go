package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	apiclient "github.com/donaldgifford/crop-advisor/internal/api/client"
	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printRecommendation(w io.Writer, rec *apiclient.Recommendation) error {
	tw := newTabWriter(w)
	tw.writef("Source:\t%s\n", rec.Source)
	if rec.FailureKind != "" {
		tw.writef("Failure:\t%s after %d attempts\n", rec.FailureKind, rec.Attempts)
	}
	tw.writef("Fingerprint:\t%s\n", rec.Fingerprint)
	if rec.HistoryID != "" {
		tw.writef("History ID:\t%s\n", rec.HistoryID)
	}
	tw.writef("\n")
	printResultRows(tw, &rec.Result)
	return tw.finish()
}

func printResult(w io.Writer, res *domain.RecommendationResult) error {
	tw := newTabWriter(w)
	printResultRows(tw, res)
	return tw.finish()
}

func printResultRows(tw *tabWriter, res *domain.RecommendationResult) {
	tw.writef("CATEGORY\tCROP\tSCORE\tPROFIT\tMATURITY\tTOP\n")
	for i := range res.Categories {
		cat := &res.Categories[i]
		if len(cat.Crops) == 0 {
			tw.writef("%s\t-\t-\t-\t-\t\n", cat.Type)
			continue
		}
		for j := range cat.Crops {
			crop := &cat.Crops[j]
			top := ""
			if crop.IsTopPick {
				top = "*"
			}
			tw.writef("%s\t%s\t%d\t$%.0f\t%s\t%s\n",
				cat.Type,
				crop.Name,
				crop.Score,
				crop.EstimatedProfit,
				crop.MaturityPeriod,
				top,
			)
		}
	}
	if res.Reasoning != "" {
		tw.writef("\nReasoning:\t%s\n", truncate(res.Reasoning, 200))
	}
}

func printProfilesTable(w io.Writer, profiles []domain.FarmProfile) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tSOIL\tWATER\tACRES\tPRIORITY\tUPDATED\n")
	for i := range profiles {
		p := &profiles[i]
		tw.writef("%s\t%s\t%s\t%s\t%g\t%s\t%s\n",
			p.ID,
			truncate(p.Name, 30),
			p.Farm.SoilType,
			describeWater(p.Farm.WaterAvailability),
			p.Farm.LandSize,
			p.Farm.FarmingPriority,
			p.UpdatedAt.Format(timeLayout),
		)
	}
	return tw.finish()
}

func printProfileDetail(w io.Writer, p *domain.FarmProfile) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", p.ID)
	tw.writef("Name:\t%s\n", p.Name)
	if loc := p.Farm.Location; loc != nil {
		tw.writef("Location:\t%s (%.4f, %.4f)\n", loc.Name, loc.Latitude, loc.Longitude)
	}
	tw.writef("Land Size:\t%g acres\n", p.Farm.LandSize)
	tw.writef("Soil:\t%s\n", p.Farm.SoilType)
	tw.writef("Water:\t%s\n", describeWater(p.Farm.WaterAvailability))
	tw.writef("Budget:\t$%.2f\n", p.Farm.Budget)
	tw.writef("Priority:\t%s\n", p.Farm.FarmingPriority)
	if p.Farm.Experience != nil {
		tw.writef("Experience:\t%d years\n", *p.Farm.Experience)
	}
	if p.Farm.PreviousCrop != "" {
		tw.writef("Previous Crop:\t%s\n", p.Farm.PreviousCrop)
	}
	tw.writef("Created:\t%s\n", p.CreatedAt.Format(timeLayout))
	tw.writef("Updated:\t%s\n", p.UpdatedAt.Format(timeLayout))
	return tw.finish()
}

func printHistoryTable(w io.Writer, entries []domain.HistoryEntry) error {
	tw := newTabWriter(w)
	tw.writef("ID\tSOURCE\tFAILURE\tATTEMPTS\tCROPS\tTOP PICK\tCREATED\n")
	for i := range entries {
		e := &entries[i]
		failure := e.FailureKind
		if failure == "" {
			failure = "-"
		}
		tw.writef("%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			e.ID,
			e.Source,
			failure,
			e.Attempts,
			e.Result.CropCount(),
			firstTopPick(&e.Result),
			e.CreatedAt.Format(timeLayout),
		)
	}
	return tw.finish()
}

// firstTopPick returns the top pick of the first non-empty category.
func firstTopPick(res *domain.RecommendationResult) string {
	for i := range res.Categories {
		if crop, ok := res.Categories[i].TopPick(); ok {
			return crop.Name
		}
	}
	return "-"
}

func describeWater(w *domain.WaterAvailability) string {
	switch {
	case w.IsZero():
		return "-"
	case w.Inches != nil:
		return fmt.Sprintf("%g in", *w.Inches)
	default:
		return w.Category
	}
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
