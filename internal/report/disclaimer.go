package report

import (
	"fmt"
	"io"
)

const disclaimerBanner = `
╔══════════════════════════════════════════════════════════════╗
║                     iPhoenix OSINT Tool                      ║
║                    Ethical Use Required                      ║
╚══════════════════════════════════════════════════════════════╝

IMPORTANT LEGAL AND ETHICAL NOTICE:

1. iPhoenix analyzes PUBLICLY AVAILABLE INFORMATION ONLY.
2. It does NOT:
   - Hack, crack, or bypass security
   - Access private accounts or data
   - Identify individuals or reveal private information
   - Perform facial recognition
   - Track locations or movements
   - Claim ownership of accounts or content

3. Intended use cases:
   - Cybersecurity research and education
   - Fraud and scam investigation
   - Journalistic research (public figures/organizations)
   - Digital footprint awareness

4. Prohibited uses:
   - Harassment, stalking, or doxxing
   - Identity theft or fraud
   - Unauthorized surveillance
   - Violating terms of service of any platform

By using iPhoenix, you agree to use it only for ethical,
legal purposes and to take full responsibility for your actions.
`

// PrintDisclaimer writes the ethical-use banner and the session header.
func PrintDisclaimer(w io.Writer) {
	Yellow(disclaimerBanner).Fprintln(w)
	fmt.Fprintln(w, "============================================================")
	Bold("[iPhoenix] Initializing ethical OSINT investigation...").Fprintln(w)
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w)
}
