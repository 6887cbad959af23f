package logos

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// WriteReport persists the failure report: one entity/domain/reason block
// per unresolved entry.
func WriteReport(path string, failures []Failure) error {
	var b strings.Builder
	b.WriteString("Failed Logo Downloads\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, f := range failures {
		domain := f.Domain
		if domain == "" {
			domain = "N/A"
		}
		fmt.Fprintf(&b, "Entity: %s\n", f.Entity)
		fmt.Fprintf(&b, "Domain: %s\n", domain)
		fmt.Fprintf(&b, "Reason: %s\n", f.Reason)
		b.WriteString(strings.Repeat("-", 60) + "\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return eris.Wrapf(err, "write report %s", path)
	}
	return nil
}
