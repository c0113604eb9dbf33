package report

import (
	"bytes"
	"fmt"
	"strings"

	"clinichub/models"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
)

// renderPDF lays out a report on A4: clinic header, patient and doctor block,
// diagnosis, prescription table and notes.
func renderPDF(clinicName string, rep *models.Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Medical report "+rep.ID, true)
	pdf.SetCreator(clinicName, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	width, _ := pdf.GetPageSize()
	contentWidth := width - 2*pageMargin

	// Header.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(33, 64, 154)
	pdf.CellFormat(contentWidth, 10, tr(clinicName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(contentWidth, lineHeight, "Medical Report", "B", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Parties.
	pdf.SetTextColor(0, 0, 0)
	half := contentWidth / 2
	field := func(label, value string, ln int) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(28, lineHeight, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(half-28, lineHeight, tr(value), "", ln, "L", false, 0, "")
	}
	field("Patient:", rep.PatientName, 0)
	field("Doctor:", "Dr. "+rep.DoctorName, 1)
	field("Date:", rep.AppointmentDate+" "+rep.AppointmentTime, 0)
	field("Speciality:", rep.Speciality, 1)
	if rep.FollowUpDate != "" {
		field("Follow-up:", rep.FollowUpDate, 1)
	}
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(235, 240, 250)
		pdf.CellFormat(contentWidth, 8, title, "", 1, "L", true, 0, "")
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "", 10)
	}

	section("Diagnosis")
	pdf.MultiCell(contentWidth, lineHeight, tr(rep.Diagnosis), "", "L", false)
	if len(rep.Symptoms) > 0 {
		pdf.MultiCell(contentWidth, lineHeight, tr("Symptoms: "+strings.Join(rep.Symptoms, ", ")), "", "L", false)
	}
	pdf.Ln(3)

	section("Prescriptions")
	if len(rep.Prescriptions) == 0 {
		pdf.CellFormat(contentWidth, lineHeight, "None", "", 1, "L", false, 0, "")
	} else {
		cols := []float64{contentWidth * 0.34, contentWidth * 0.22, contentWidth * 0.26, contentWidth * 0.18}
		pdf.SetFont("Helvetica", "B", 10)
		for i, h := range []string{"Medicine", "Dosage", "Frequency", "Duration"} {
			pdf.CellFormat(cols[i], 7, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
		for _, p := range rep.Prescriptions {
			duration := ""
			if p.DurationDays > 0 {
				duration = fmt.Sprintf("%d days", p.DurationDays)
			}
			for i, v := range []string{p.Medicine, p.Dosage, p.Frequency, duration} {
				pdf.CellFormat(cols[i], 7, tr(v), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}
	pdf.Ln(3)

	if len(rep.Tests) > 0 {
		section("Tests")
		for _, t := range rep.Tests {
			pdf.CellFormat(contentWidth, lineHeight, tr("- "+t), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	if rep.Notes != "" {
		section("Notes")
		pdf.MultiCell(contentWidth, lineHeight, tr(rep.Notes), "", "L", false)
	}

	pdf.SetY(-25)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(contentWidth, 5, "Report "+rep.ID+" issued "+rep.UpdatedAt.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
