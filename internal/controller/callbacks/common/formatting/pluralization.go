package formatting

import "fmt"

// Pluralize picks singular for exactly one, plural otherwise, and prefixes the count.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

func PluralizeAppointments(count int) string {
	return Pluralize(count, "consulta", "consultas")
}

func PluralizeRequests(count int) string {
	return Pluralize(count, "solicitação", "solicitações")
}

func PluralizeAssessments(count int) string {
	return Pluralize(count, "autoavaliação", "autoavaliações")
}
