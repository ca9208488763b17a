package arrivals

import (
	"fmt"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
)

// FormatDuration renders whole minutes as "H hours M minutes" or "M minutes", in English and Persian
func FormatDuration(minutes int) metro.BilingualName {
	if minutes < 0 {
		minutes = 0
	}

	hours := minutes / 60
	minutes = minutes % 60

	if hours == 0 {
		return metro.BilingualName{
			En: fmt.Sprintf("%d minutes", minutes),
			Fa: fmt.Sprintf("%d دقیقه", minutes),
		}
	}

	return metro.BilingualName{
		En: fmt.Sprintf("%d hours %d minutes", hours, minutes),
		Fa: fmt.Sprintf("%d ساعت و %d دقیقه", hours, minutes),
	}
}
