package common

import "strings"

// naStrings are the cell contents spreadsheet style tables use for
// "no data". It is the list pandas uses.
var naStrings = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true,
	"None": true, "n/a": true, "nan": true, "null": true,
}

// IsNA says if a table cell, ignoring white space, means missing data.
func IsNA(s string) bool { return naStrings[strings.TrimSpace(s)] }
