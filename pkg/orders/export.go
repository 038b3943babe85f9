package orders

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/query"
)

var columns = []string{
	"Order ID", "Customer Name", "Email", "Phone", "Total", "Status",
	"Payment Method", "Address", "Items", "Created At", "Delivered At",
}

const timeLayout = "2006-01-02 15:04:05"

// Export writes every order matching p, ignoring pagination.
func (b *Board) Export(ctx context.Context, w io.Writer, p query.Params, loc *time.Location) error {
	p.Page, p.PageSize = 1, 0
	page, err := b.List(ctx, p)
	if err != nil {
		return err
	}
	return WriteCSV(w, page.Items, loc)
}

// WriteCSV renders orders with timestamps in loc. Items read "Name (2x)",
// joined with "; ".
func WriteCSV(w io.Writer, orders []models.Order, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		items := make([]string, len(o.Items))
		for i, it := range o.Items {
			items[i] = fmt.Sprintf("%s (%dx)", it.Name, it.Quantity)
		}
		delivered := ""
		if o.DeliveredAt != nil {
			delivered = o.DeliveredAt.In(loc).Format(timeLayout)
		}
		rows = append(rows, []string{
			o.ID,
			o.CustomerName,
			o.CustomerEmail,
			o.CustomerPhone,
			o.Total.String(),
			string(o.Status),
			o.PaymentMethod,
			o.DeliveryAddress,
			strings.Join(items, "; "),
			o.CreatedAt.In(loc).Format(timeLayout),
			delivered,
		})
	}
	return query.WriteCSV(w, columns, rows)
}

// Filename is the download name for an export made at t.
func Filename(t time.Time) string {
	return "orders-" + t.Format("2006-01-02") + ".csv"
}
