package ollamalink

import "fmt"

const (
	kiloByte = 1000
	megaByte = kiloByte * 1000
	gigaByte = megaByte * 1000
	teraByte = gigaByte * 1000
)

// HumanBytes renders a byte count in decimal units for display.
func HumanBytes(b int64) string {
	switch {
	case b > teraByte:
		return fmt.Sprintf("%.1f TB", float64(b)/teraByte)
	case b > gigaByte:
		return fmt.Sprintf("%.1f GB", float64(b)/gigaByte)
	case b > megaByte:
		return fmt.Sprintf("%.1f MB", float64(b)/megaByte)
	case b > kiloByte:
		return fmt.Sprintf("%.1f KB", float64(b)/kiloByte)
	default:
		return fmt.Sprintf("%d B", b)
	}
}
