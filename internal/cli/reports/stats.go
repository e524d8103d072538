package reports

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/moodatlas/internal/cli"
	"github.com/julianstephens/moodatlas/internal/constants"
	"github.com/julianstephens/moodatlas/internal/report"
)

type StatsCmd struct {
	From string `help:"First day to include (YYYY-MM-DD)."`
	To   string `help:"Last day to include (YYYY-MM-DD)."`
	JSON bool   `name:"json" help:"Print the analytics snapshot as JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	start, end, err := ctx.ParseRange(c.From, c.To)
	if err != nil {
		return err
	}
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}

	snap, err := engine.Compute(ctx.Context(), user.ID, start, end)
	if err != nil {
		return fmt.Errorf("failed to compute analytics: %w", err)
	}

	if c.JSON {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal analytics: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Println(report.Render(user.Username, periodLabel(start, end), snap))
	return nil
}

func periodLabel(start, end *time.Time) string {
	switch {
	case start == nil && end == nil:
		return "All time"
	case start == nil:
		return "Through " + end.Format(constants.PeriodDateFormat)
	case end == nil:
		return "Since " + start.Format(constants.PeriodDateFormat)
	default:
		return fmt.Sprintf("%s to %s", start.Format(constants.PeriodDateFormat), end.Format(constants.PeriodDateFormat))
	}
}
