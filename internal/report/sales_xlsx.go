// 売上記録をExcelに書き出す
package report

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
)

const (
	SalesSheetName   = "Sales"
	SalesContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout       = "2006-01-02 15:04:05"
)

var salesHeaders = []string{"ID", "Order ID", "User ID", "Buyer", "Date of sale", "Price"}

// 売上がなくてもヘッダー行だけのシートを書く
func WriteSales(w io.Writer, records []model.SalesRecord) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SalesSheetName)
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range salesHeaders {
		header.AddCell().SetString(h)
	}

	for _, r := range records {
		row := sheet.AddRow()
		row.AddCell().SetInt64(r.ID)
		row.AddCell().SetInt64(r.OrderID)
		row.AddCell().SetInt64(r.UserID)
		row.AddCell().SetString(r.BuyerName)
		row.AddCell().SetString(r.DateOfSale.Format(dateLayout))
		row.AddCell().SetFloat(r.Price.InexactFloat64())
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
