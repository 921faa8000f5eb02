package importer

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Keystone exam files pack the key as schoolid_group_subject in the first
// cell. The key is split into subject and demographic_group columns that
// lead the row, followed by the school id and the remaining cells.
var keystonePrefix = []string{"subject PK_TEXT", "demographic_group PK_TEXT"}

// IsKeystone reports whether a file name marks a Keystone exam sheet.
func IsKeystone(name string) bool {
	return strings.Contains(name, "Keystone")
}

func keystoneHeader(cells []string) []string {
	return append(append([]string{}, keystonePrefix...), cells...)
}

// splitKeystoneRow expands one Keystone data row. Group names may contain
// underscores, so the school id is the first component and the subject the last.
func splitKeystoneRow(cells []string) ([]string, error) {
	if len(cells) == 0 {
		return nil, eris.New("importer: keystone row is empty")
	}
	parts := strings.Split(strings.TrimSpace(cells[0]), "_")
	if len(parts) < 3 {
		return nil, eris.Errorf("importer: keystone key %q is not schoolid_group_subject", cells[0])
	}
	schoolID := parts[0]
	subject := parts[len(parts)-1]
	group := strings.Join(parts[1:len(parts)-1], "_")

	out := make([]string, 0, len(cells)+2)
	out = append(out, subject, group, schoolID)
	return append(out, cells[1:]...), nil
}
