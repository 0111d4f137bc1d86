package formatting

import (
	"fmt"
	"time"
)

var weekdayNames = []string{
	"Domingo",
	"Segunda-feira",
	"Terça-feira",
	"Quarta-feira",
	"Quinta-feira",
	"Sexta-feira",
	"Sábado",
}

var weekdayShortNames = []string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

var monthNames = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatDateTime renders the UTC wall clock as "DD/MM/YYYY às HH:MM".
func FormatDateTime(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%s às %s", u.Format("02/01/2006"), u.Format("15:04"))
}

func FormatDate(t time.Time) string {
	return t.UTC().Format("02/01/2006")
}

// FormatDateLong renders "Sábado, 10 de maio de 2025".
func FormatDateLong(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		GetWeekdayName(t.Weekday()), t.Day(), GetMonthName(t.Month()), t.Year())
}

func GetWeekdayName(weekday time.Weekday) string {
	if weekday >= 0 && int(weekday) < len(weekdayNames) {
		return weekdayNames[weekday]
	}
	return "?"
}

func GetWeekdayShort(weekday time.Weekday) string {
	if weekday >= 0 && int(weekday) < len(weekdayShortNames) {
		return weekdayShortNames[weekday]
	}
	return "?"
}

func GetMonthName(month time.Month) string {
	if month >= time.January && month <= time.December {
		return monthNames[month-1]
	}
	return "?"
}
