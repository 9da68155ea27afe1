package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

// Reader loads a tabular file into a data frame with inferred column types.
type Reader interface {
	CanRead(path string) bool
	Read(path string, opt LoadOptions) (dataframe.DataFrame, error)
}

var registry []Reader

// naValues are the cell contents read as missing.
var naValues = []string{"", "NA", "NaN", "<nil>"}

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// readerFor picks the first registered reader accepting path, falling back to CSV.
func readerFor(path string) Reader {
	for _, r := range registry {
		if r.CanRead(path) {
			return r
		}
	}
	return csvReader{}
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}

type csvReader struct{}

func (csvReader) CanRead(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvReader) Read(path string, opt LoadOptions) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	df := dataframe.ReadCSV(f, dataframe.WithDelimiter(delim), dataframe.NaNValues(naValues))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read csv %s: %w", filepath.Base(path), df.Err)
	}
	return df, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

type xlsxReader struct{}

func (xlsxReader) CanRead(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

func (xlsxReader) Read(path string, opt LoadOptions) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	sheet := ""
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return dataframe.DataFrame{}, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				opt.SheetName, filepath.Base(path), strings.Join(sheets, ", "))
		}
	} else {
		idx := opt.SheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return dataframe.DataFrame{}, fmt.Errorf("sheet index %d out of range in workbook '%s' (%d sheets)",
				idx, filepath.Base(path), len(sheets))
		}
		sheet = sheets[idx-1]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %s in %s is empty", sheet, filepath.Base(path))
	}
	// GetRows drops trailing empty cells; pad to the header width.
	ncol := len(rows[0])
	for i, row := range rows {
		if len(row) < ncol {
			tmp := make([]string, ncol)
			copy(tmp, row)
			rows[i] = tmp
		} else if len(row) > ncol {
			rows[i] = row[:ncol]
		}
	}
	df := dataframe.LoadRecords(rows, dataframe.NaNValues(naValues))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("load sheet %s: %w", sheet, df.Err)
	}
	return df, nil
}
