package orders

import (
	"bytes"
	"fmt"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/phpdave11/gofpdf"
)

const ticketTimeLayout = "2006-01-02 15:04 MST"

// renderETicket prints one block per ticket of the order.
func renderETicket(order *domain.Order, email string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("E-Ticket order %d", order.ID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Order     : #%d", order.ID))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Passenger : "+email)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued    : "+order.CreatedAt.UTC().Format(ticketTimeLayout))
	pdf.Ln(10)

	for i, t := range order.Tickets {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("Ticket %d", i+1))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 11)
		lines := []string{fmt.Sprintf("Row %d, seat %d", t.Row, t.Seat)}
		if f := t.Flight; f != nil {
			lines = append(lines,
				fmt.Sprintf("Flight %d: %s", f.ID, f.CitiesRoute),
				"Airplane  : "+f.AirplaneName,
				"Departure : "+f.DepartureTime.UTC().Format(ticketTimeLayout),
				"Arrival   : "+f.ArrivalTime.UTC().Format(ticketTimeLayout),
			)
		} else {
			lines = append(lines, fmt.Sprintf("Flight %d", t.FlightID))
		}
		for _, l := range lines {
			pdf.Cell(0, 6, l)
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render e-ticket: %w", err)
	}
	return buf.Bytes(), nil
}
