// Command dayimage renders a sample day picture to a PNG file.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/psicocare/psicocare_bot/internal/controller/callbacks/common"
	"github.com/psicocare/psicocare_bot/internal/model"
	"github.com/psicocare/psicocare_bot/internal/scheduling"
	"github.com/psicocare/psicocare_bot/internal/timeinput"
)

func main() {
	out := flag.String("o", "day.png", "output file")
	name := flag.String("name", "Dra. Ana Souza", "counterparty name")
	flag.Parse()

	now := time.Now()
	day := timeinput.DateOf(now)
	base := time.Date(day.Year, day.Month, day.Day, 0, 0, 0, 0, time.UTC)

	appts := []model.Appointment{
		{ID: "1", DateTime: base.Add(9 * time.Hour), Status: model.AppointmentScheduled},
		{ID: "2", DateTime: base.Add(14*time.Hour + 30*time.Minute), Status: model.AppointmentScheduled},
		{ID: "3", DateTime: base.Add(16 * time.Hour), Status: model.AppointmentCancelled},
	}
	slots := scheduling.DaySlots(appts, day)

	png, err := common.RenderDayImage(day, slots, *name, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, png, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", *out, len(png))
}
