package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jaguar8340/crm-KS/internal/model"
)

// rowError names one rejected CSV row. Row numbers are 1-indexed over the
// data rows, the header not counted.
type rowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type importResult struct {
	Imported int        `json:"imported"`
	Errors   []rowError `json:"errors"`
}

// readCSV decodes an uploaded CSV into header-keyed rows. The delimiter is
// sniffed from the header line (';' wins over ',' since the exports the
// dealership produces are semicolon separated). Short rows are padded so
// lookups by column name never fail.
func readCSV(r io.Reader) (header []string, rows [][]string, err error) {
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, nil, err
	}
	content := buf.String()
	firstLine := content
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		firstLine = content[:i]
	}

	cr := csv.NewReader(strings.NewReader(content))
	if strings.Contains(firstLine, ";") {
		cr.Comma = ';'
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}
	header = records[0]
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	rows = records[1:]
	return header, rows, nil
}

// colIndex maps header names to positions.
func colIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	return idx
}

func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ImportCustomers handles POST /customers/upload-csv. Rows missing a
// required field are collected into the error list and the rest import;
// the whole request fails only when the file itself cannot be parsed.
func (h *CustomerHandler) ImportCustomers(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "open file failed"})
	}
	defer f.Close()

	header, rows, err := readCSV(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid csv file"})
	}
	idx := colIndex(header)

	ctx := c.Request().Context()
	result := importResult{Errors: []rowError{}}
	for i, row := range rows {
		rowNum := i + 1
		in := model.CustomerInput{
			KundenNr:     field(row, idx, "kunden_nr"),
			Vorname:      field(row, idx, "vorname"),
			Name:         field(row, idx, "name"),
			Firma:        field(row, idx, "firma"),
			Strasse:      field(row, idx, "strasse"),
			PLZ:          field(row, idx, "plz"),
			Ort:          field(row, idx, "ort"),
			TelefonP:     field(row, idx, "telefon_p"),
			TelefonG:     field(row, idx, "telefon_g"),
			Natel:        field(row, idx, "natel"),
			EmailP:       field(row, idx, "email_p"),
			EmailG:       field(row, idx, "email_g"),
			Geburtsdatum: field(row, idx, "geburtsdatum"),
		}
		if in.KundenNr == "" || in.Vorname == "" || in.Name == "" {
			result.Errors = append(result.Errors, rowError{Row: rowNum, Error: "kunden_nr, vorname and name required"})
			continue
		}
		if in.Strasse == "" || in.PLZ == "" || in.Ort == "" {
			result.Errors = append(result.Errors, rowError{Row: rowNum, Error: "strasse, plz and ort required"})
			continue
		}
		cu := &model.Customer{
			ID:            uuid.NewString(),
			CustomerInput: in,
			Bemerkungen:   []model.Remark{},
			Korrespondenz: []model.Correspondence{},
			CreatedAt:     time.Now().UTC(),
		}
		if err := h.Customers.Create(ctx, cu); err != nil {
			result.Errors = append(result.Errors, rowError{Row: rowNum, Error: "insert failed"})
			continue
		}
		result.Imported++
	}
	return c.JSON(http.StatusOK, result)
}

// ImportVehicles handles POST /vehicles/upload-csv. Ownership is resolved
// through the kunden_nr business key; rows naming an unknown customer are
// rejected individually.
func (h *VehicleHandler) ImportVehicles(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "open file failed"})
	}
	defer f.Close()

	header, rows, err := readCSV(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid csv file"})
	}
	idx := colIndex(header)

	ctx := c.Request().Context()
	result := importResult{Errors: []rowError{}}
	for i, row := range rows {
		rowNum := i + 1
		kundenNr := field(row, idx, "kunden_nr")
		if kundenNr == "" {
			result.Errors = append(result.Errors, rowError{Row: rowNum, Error: "kunden_nr required"})
			continue
		}
		owner, err := h.Customers.GetByKundenNr(ctx, kundenNr)
		if err != nil {
			result.Errors = append(result.Errors, rowError{Row: rowNum, Error: fmt.Sprintf("customer %s not found", kundenNr)})
			continue
		}
		in := model.VehicleInput{
			CustomerID:       owner.ID,
			Marke:            field(row, idx, "marke"),
			Modell:           field(row, idx, "modell"),
			ChassisNr:        field(row, idx, "chassis_nr"),
			StammNr:          field(row, idx, "stamm_nr"),
			TypenscheinNr:    field(row, idx, "typenschein_nr"),
			Farbe:            field(row, idx, "farbe"),
			Inverkehrsetzung: field(row, idx, "inverkehrsetzung"),
			KmStand:          field(row, idx, "km_stand"),
			VistaNr:          field(row, idx, "vista_nr"),
			Verkaeufer:       field(row, idx, "verkaeufer"),
			Kundenberater:    field(row, idx, "kundenberater"),
		}
		if in.Marke == "" || in.Modell == "" || in.ChassisNr == "" {
			result.Errors = append(result.Errors, rowError{Row: rowNum, Error: "marke, modell and chassis_nr required"})
			continue
		}
		v := &model.Vehicle{
			ID:           uuid.NewString(),
			VehicleInput: in,
			CreatedAt:    time.Now().UTC(),
		}
		if err := h.Vehicles.Create(ctx, v); err != nil {
			result.Errors = append(result.Errors, rowError{Row: rowNum, Error: "insert failed"})
			continue
		}
		result.Imported++
	}
	return c.JSON(http.StatusOK, result)
}
