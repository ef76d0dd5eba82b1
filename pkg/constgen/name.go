package constgen

import (
	"strings"

	"github.com/ternarybob/constgen/internal/fileutil"
)

// ConstantName derives the constant identifier for an input path: the final
// path element, upper-cased, with '.' replaced by '_'.
//
//	assets/greeting.txt -> GREETING_TXT
func ConstantName(path string) string {
	return strings.ReplaceAll(strings.ToUpper(fileutil.Base(path)), ".", "_")
}
