package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"roteiro/internal/crm"
	"roteiro/internal/dateutil"
)

func (a *App) taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(a.taskAddCmd())
	cmd.AddCommand(a.taskListCmd())
	cmd.AddCommand(a.taskStatusCmd())
	return cmd
}

func (a *App) taskAddCmd() *cobra.Command {
	var (
		date     string
		hhmm     string
		priority string
		taskType string
		client   string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Example: `  roteiro task add "Send price table" --date=tomorrow --time=10:30 --priority=high
  roteiro task add "Call back about order" --client="Mercado Bom Preço"`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			rep, err := a.repID()
			if err != nil {
				return err
			}

			t, err := crm.NewTask(rep, args[0], date, hhmm, priority)
			if err != nil {
				return err
			}
			t.Type = taskType
			t.ClientName = client

			if err := a.store.CreateTask(context.Background(), t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}
			a.agg.Invalidate(rep, t.DueDate)

			fmt.Printf("Created task %s: %s due %s\n", t.ID, t.Title, dateutil.DayKey(t.DueDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Due date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&hhmm, "time", "", "Due time (HH:MM)")
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority: low, medium or high")
	cmd.Flags().StringVar(&taskType, "type", "", "Task type (call, delivery, follow_up, ...)")
	cmd.Flags().StringVar(&client, "client", "", "Client name the task relates to")

	return cmd
}

func (a *App) taskListCmd() *cobra.Command {
	var (
		date string
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the day's tasks",
		RunE: func(_ *cobra.Command, _ []string) error {
			rep, err := a.repID()
			if err != nil {
				return err
			}

			day, err := dateutil.ParseRelativeDate(date, dateutil.TruncateToDay(nowFunc()))
			if err != nil {
				return err
			}

			statuses := crm.OpenTaskStatuses
			if all {
				statuses = nil
			}

			tasks, err := a.store.ListTasks(context.Background(), rep, day, statuses)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}
			if len(tasks) == 0 {
				fmt.Printf("No tasks on %s.\n", dateutil.DayKey(day))
				return nil
			}

			for _, t := range tasks {
				timeCol := "--:--"
				if t.Time != "" {
					timeCol = t.Time
				}
				fmt.Printf("  %s  %-7s [%s] %s%s\n", t.ID, timeCol, t.Priority, t.Title, statusSuffix(string(t.Status)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow; default: today)")
	cmd.Flags().BoolVar(&all, "all", false, "Include done and canceled tasks")

	return cmd
}

func (a *App) taskStatusCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "status [task-id] [status]",
		Short: "Update a task's status",
		Long:  `Update a task's status: pending, in_progress, done or canceled.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			rep, err := a.repID()
			if err != nil {
				return err
			}

			status := crm.TaskStatus(args[1])
			if !status.Valid() {
				return crm.ErrInvalidStatus
			}

			if err := a.store.UpdateTaskStatus(context.Background(), args[0], status); err != nil {
				return fmt.Errorf("updating task: %w", err)
			}

			day, err := dateutil.ParseRelativeDate(date, dateutil.TruncateToDay(nowFunc()))
			if err == nil {
				a.agg.Invalidate(rep, day)
			}

			fmt.Printf("Task %s is now %s.\n", args[0], status)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Due date of the task, used to refresh the report (default: today)")

	return cmd
}
