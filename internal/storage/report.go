// Package storage renders downloadable artifacts for finished calls.
package storage

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/demandify-media/caller-voice-service/internal/domain"
	"github.com/demandify-media/caller-voice-service/pkg/logger"
	"github.com/jung-kurt/gofpdf/v2"
	"go.uber.org/zap"
)

// RenderCallReport produces the PDF call report for one record and its
// transcript.
func RenderCallReport(record *domain.CallRecord, turns []domain.CallTurnRecord) ([]byte, error) {
	if record == nil {
		return nil, fmt.Errorf("call record cannot be nil")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Times", "B", 16)
	pdf.CellFormat(0, 10, "Call Report", "", 1, "", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Times", "", 12)
	pdf.MultiCell(0, 7, summaryText(record), "", "", false)
	pdf.Ln(4)

	if len(turns) > 0 {
		pdf.SetFont("Times", "B", 13)
		pdf.CellFormat(0, 8, "Transcript", "", 1, "", false, 0, "")
		pdf.SetFont("Times", "", 11)
		for _, turn := range turns {
			line := fmt.Sprintf("%d. [%s] Prospect: %s", turn.Sequence, turn.Stage, turn.Utterance)
			pdf.MultiCell(0, 6, line, "", "", false)
			pdf.MultiCell(0, 6, fmt.Sprintf("   Agent: %s", turn.Reply), "", "", false)
			pdf.Ln(1)
		}
	}

	// Footer with timestamp
	pdf.SetFont("Arial", "I", 8)
	pdf.SetY(-15)
	pdf.SetX(0)
	pdf.CellFormat(0, 10, fmt.Sprintf("Generated on %s", time.Now().Format("2006-01-02 15:04:05")), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	logger.Base().Info("Call report rendered", zap.String("call_id", record.ID), zap.Int("size_bytes", buf.Len()))
	return buf.Bytes(), nil
}

func summaryText(record *domain.CallRecord) string {
	lines := []string{
		fmt.Sprintf("Prospect: %s (%s at %s)", orDash(record.ProspectName), orDash(record.JobTitle), orDash(record.CompanyName)),
		fmt.Sprintf("Email: %s", orDash(record.Email)),
		fmt.Sprintf("Campaign: %s", orDash(record.CampaignKey)),
		fmt.Sprintf("Room: %s (lead #%d)", orDash(record.RoomName), record.LeadIndex),
		fmt.Sprintf("Outcome: %s (final stage: %s)", record.Outcome, orDash(record.FinalStage)),
		fmt.Sprintf("Turns: %d, objections: %d, rapport: %d, personality: %s",
			record.TurnCount, record.ObjectionCount, record.RapportLevel, orDash(record.Personality)),
		fmt.Sprintf("Started: %s", record.StartedAt.Format(time.RFC1123)),
		fmt.Sprintf("Ended: %s", record.EndedAt.Format(time.RFC1123)),
	}
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
