package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"wiredleaf-api/models"
)

// MeetingInvitePDF renders a one-page invite for an approved consultation.
func MeetingInvitePDF(c *models.Consultation, m *models.Meeting) (*models.Attachment, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "WiredLeaf Consultation Invite")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Dear %s,", c.Name))
	pdf.Ln(10)
	pdf.MultiCell(0, 8, fmt.Sprintf("Your consultation request for %s has been approved.", c.Service), "", "L", false)
	pdf.Ln(4)

	rows := [][2]string{
		{"Meeting", m.Title},
		{"Date", m.StartTime.Format("Monday, January 2, 2006")},
		{"Time", m.StartTime.Format("3:04 PM MST") + " - " + m.EndTime.Format("3:04 PM MST")},
		{"Duration", FormatDuration(m.Duration())},
		{"Link", models.StringOr(m.MeetingLink, "To be shared")},
	}
	for _, r := range rows {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(30, 8, r[0]+":")
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, r[1])
		pdf.Ln(8)
	}

	pdf.Ln(6)
	pdf.Cell(40, 10, "Please join the meeting 5 minutes early.")
	pdf.Ln(12)
	pdf.Cell(40, 10, "Best regards,")
	pdf.Ln(8)
	pdf.Cell(40, 10, "The WiredLeaf Team")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error generating meeting invite PDF: %w", err)
	}
	return &models.Attachment{
		Name:        "meeting-invite.pdf",
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}
