package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/claude/musclemap/internal/client"
	"github.com/claude/musclemap/internal/models"
)

// Version is set at build time via -ldflags.
var Version = "dev"

const usage = `Usage: musclemap-cli -server <URL> [-api-key KEY] <command> [args]

Commands:
  week [date]                         show the week containing date (default: today)
  add <date> <name>                   create a workout on a day
  move <workout-id> <from> <to>       move a workout between days
  reorder <date> <workout-id> <pos>   move a workout to a position within its day
  delete <workout-id>                 delete a workout
`

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "MuscleMap server URL")
	apiKey := flag.String("api-key", "", "API key for mutating commands")
	duration := flag.Int("duration", 60, "workout duration in minutes (add)")
	difficulty := flag.String("difficulty", "intermediate", "workout difficulty (add)")
	color := flag.String("color", "#5A57CB", "workout display color (add)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("musclemap-cli", Version)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	c := client.New(*serverURL, *apiKey)
	ctx := context.Background()

	var err error
	switch args[0] {
	case "week":
		date := time.Now().Format(models.DateLayout)
		if len(args) > 1 {
			date = args[1]
		}
		err = showWeek(ctx, c, date)
	case "add":
		if len(args) != 3 {
			fail("add needs <date> <name>")
		}
		draft := models.Workout{
			Name:       args[2],
			Duration:   *duration,
			Difficulty: models.Difficulty(*difficulty),
			Color:      *color,
		}
		var created models.Workout
		created, err = c.CreateWorkout(ctx, args[1], draft)
		if err == nil {
			fmt.Printf("created %s (%s)\n", created.Name, created.ID)
		}
	case "move":
		if len(args) != 4 {
			fail("move needs <workout-id> <from> <to>")
		}
		err = c.MoveWorkout(ctx, args[1], args[2], args[3])
	case "reorder":
		if len(args) != 4 {
			fail("reorder needs <date> <workout-id> <position>")
		}
		var pos int
		pos, err = strconv.Atoi(args[3])
		if err != nil {
			fail("position must be an integer")
		}
		err = c.ReorderWorkout(ctx, args[1], args[2], pos)
	case "delete":
		if len(args) != 2 {
			fail("delete needs <workout-id>")
		}
		err = c.DeleteWorkout(ctx, args[1])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, "error:", msg)
	os.Exit(1)
}

// showWeek prints the Monday-start week containing the date, one line per
// workout.
func showWeek(ctx context.Context, c *client.Client, date string) error {
	at, err := models.ParseDate(date)
	if err != nil {
		return err
	}

	days, err := c.Days(ctx)
	if err != nil {
		return err
	}

	offset := int(at.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	monday := at.AddDate(0, 0, -offset)

	for i := range 7 {
		d := monday.AddDate(0, 0, i)
		key := d.Format(models.DateLayout)

		var day *models.Day
		for j := range days {
			if days[j].Date == key {
				day = &days[j]
				break
			}
		}

		fmt.Printf("%s %s\n", d.Format("Mon"), key)
		if day == nil || len(day.Workouts) == 0 {
			fmt.Println("  (rest)")
			continue
		}
		for _, w := range day.Workouts {
			fmt.Printf("  %s: %dmin, %s, %d exercises  [%s]\n",
				w.Name, w.Duration, w.Difficulty, len(w.Exercises), w.ID)
		}
	}
	return nil
}
