// Package report renders admin spreadsheets of the catalog and of orders.
package report

import (
	"context"
	"io"
	"strings"

	"vyaha-be/internal/auth"
	"vyaha-be/internal/logger"
	"vyaha-be/internal/order"
	"vyaha-be/internal/pricing"
	"vyaha-be/internal/product"

	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	timeLayout  = "2006-01-02 15:04:05"
	pageSize    = 200
)

type ProductSource interface {
	List(ctx context.Context, actor auth.Identity, opts product.ListOptions) (*product.ListResult, error)
}

type OrderSource interface {
	ListAll(ctx context.Context, actor auth.Identity, opts order.ListOptions) (*order.ListResult, error)
}

type Service struct {
	products ProductSource
	orders   OrderSource
}

func NewService(products ProductSource, orders OrderSource) *Service {
	return &Service{products: products, orders: orders}
}

// ExportProducts writes every product matching status (nil for all).
func (s *Service) ExportProducts(ctx context.Context, actor auth.Identity, status *product.Status, w io.Writer) error {
	var all []*product.Product
	for offset := 0; ; offset += pageSize {
		page, err := s.products.List(ctx, actor, product.ListOptions{Status: status, Limit: pageSize, Offset: offset})
		if err != nil {
			return err
		}
		all = append(all, page.Items...)
		if len(page.Items) < pageSize || len(all) >= page.TotalCount {
			break
		}
	}

	logger.FromCtx(ctx).Info("exporting products", zap.Int("rows", len(all)))
	return WriteProducts(w, all)
}

func (s *Service) ExportOrders(ctx context.Context, actor auth.Identity, status *order.Status, w io.Writer) error {
	var all []*order.Order
	for offset := 0; ; offset += pageSize {
		page, err := s.orders.ListAll(ctx, actor, order.ListOptions{Status: status, Limit: pageSize, Offset: offset})
		if err != nil {
			return err
		}
		all = append(all, page.Items...)
		if len(page.Items) < pageSize || len(all) >= page.TotalCount {
			break
		}
	}

	logger.FromCtx(ctx).Info("exporting orders", zap.Int("rows", len(all)))
	return WriteOrders(w, all)
}

func WriteProducts(w io.Writer, products []*product.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}

	addHeader(sheet,
		"ID", "Title", "Category", "Price", "Quantity", "Status",
		"Seller ID", "Store", "Images", "Created At", "Updated At",
	)

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Title)
		row.AddCell().SetString(p.Category)
		row.AddCell().SetString(p.Price.StringFixed(pricing.MoneyScale))
		row.AddCell().SetInt(p.Quantity)
		row.AddCell().SetString(string(p.Status))
		row.AddCell().SetString(p.SellerID)
		row.AddCell().SetString(p.SellerName)
		row.AddCell().SetString(strings.Join(p.Images, ","))
		row.AddCell().SetString(p.CreatedAt.Format(timeLayout))
		row.AddCell().SetString(p.UpdatedAt.Format(timeLayout))
	}

	return file.Write(w)
}

// WriteOrders writes one sheet of order headers and one of line items.
func WriteOrders(w io.Writer, orders []*order.Order) error {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return err
	}
	addHeader(sheet,
		"ID", "Customer ID", "Status", "Payment", "Subtotal", "Shipping", "Tax", "Total",
		"Ship To", "City", "State", "Zip", "Created At", "Delivered At",
	)

	items, err := file.AddSheet("Items")
	if err != nil {
		return err
	}
	addHeader(items, "Order ID", "Product ID", "Seller ID", "Title", "Unit Price", "Quantity", "Line Total")

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetString(o.ID)
		row.AddCell().SetString(o.UserID)
		row.AddCell().SetString(string(o.Status))
		row.AddCell().SetString(string(o.PaymentMethod))
		row.AddCell().SetString(o.Subtotal.StringFixed(pricing.MoneyScale))
		row.AddCell().SetString(o.ShippingFee.StringFixed(pricing.MoneyScale))
		row.AddCell().SetString(o.Tax.StringFixed(pricing.MoneyScale))
		row.AddCell().SetString(o.Total.StringFixed(pricing.MoneyScale))
		row.AddCell().SetString(o.ShippingAddress.FullName)
		row.AddCell().SetString(o.ShippingAddress.City)
		row.AddCell().SetString(o.ShippingAddress.State)
		row.AddCell().SetString(o.ShippingAddress.Zip)
		row.AddCell().SetString(o.CreatedAt.Format(timeLayout))
		delivered := ""
		if o.DeliveredAt != nil {
			delivered = o.DeliveredAt.Format(timeLayout)
		}
		row.AddCell().SetString(delivered)

		for _, it := range o.Items {
			r := items.AddRow()
			r.AddCell().SetString(o.ID)
			r.AddCell().SetString(it.ProductID)
			r.AddCell().SetString(it.SellerID)
			r.AddCell().SetString(it.Title)
			r.AddCell().SetString(it.UnitPrice.StringFixed(pricing.MoneyScale))
			r.AddCell().SetInt(it.Quantity)
			r.AddCell().SetString(it.LineTotal.StringFixed(pricing.MoneyScale))
		}
	}

	return file.Write(w)
}

func addHeader(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
}
