package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"moonlight/internal/bootstrap"
	goaldto "moonlight/internal/modules/goal/dto"
	settingsdto "moonlight/internal/modules/settings/dto"
	taskdto "moonlight/internal/modules/task/dto"
	"moonlight/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "moonlight",
		Short:         "Goal and daily task tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default ~/.moonlight)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newGoalCmd(&dataDir))
	root.AddCommand(newTaskCmd(&dataDir))
	root.AddCommand(newGenerateCmd(&dataDir))
	root.AddCommand(newAICmd(&dataDir))
	root.AddCommand(newSettingsCmd(&dataDir))
	root.AddCommand(newRemindCmd(&dataDir))
	root.AddCommand(newNotifierCmd(&dataDir))
	root.AddCommand(newReindexCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".moonlight")
	}
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func todayDate() string {
	return time.Now().Format("2006-01-02")
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the moonlight terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newGoalCmd(dataDir *string) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Goal lifecycle commands"}

	var description, targetDate string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.GoalCLI.SaveGoal(context.Background(), goaldto.SaveGoalInput{
				Title:       strings.Join(args, " "),
				Description: description,
				TargetDate:  targetDate,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added goal %s (%s)\n", out.Title, out.ID)
			return nil
		},
	}
	add.Flags().StringVar(&description, "description", "", "goal description")
	add.Flags().StringVar(&targetDate, "target-date", "", "target date (YYYY-MM-DD)")

	goal.AddCommand(add)

	goal.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			goals, err := app.GoalCLI.ListGoals(context.Background())
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no goals")
				return nil
			}
			for _, g := range goals {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d%%\t%s\n", g.ID, g.Status, g.Progress, g.Title)
			}
			return nil
		},
	})

	var goalID string
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show goal details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(goalID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			g, err := app.GoalCLI.GetGoal(context.Background(), goalID)
			if err != nil {
				return err
			}
			counts, err := app.TaskCLI.CountByGoal(context.Background(), goalID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\ntitle: %s\nstatus: %s\nprogress: %d%%\ntasks: %d/%d done\ncreated: %s\n",
				g.ID, g.Title, g.Status, g.Progress, counts.Completed, counts.Total, g.CreatedAt)
			if g.Description != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "description: %s\n", g.Description)
			}
			if g.TargetDate != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "target: %s\n", g.TargetDate)
			}
			return nil
		},
	}
	show.Flags().StringVar(&goalID, "id", "", "goal id")
	goal.AddCommand(show)

	var deleteID string
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a goal and all its tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(deleteID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.GoalCLI.DeleteGoal(context.Background(), deleteID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted goal %s and its tasks\n", deleteID)
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "goal id")
	goal.AddCommand(deleteCmd)

	return goal
}

func newTaskCmd(dataDir *string) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Task commands"}

	var goalID, description, date, difficulty string
	var minutes int
	add := &cobra.Command{
		Use:   "add <title> --goal-id <id>",
		Short: "Add a task to a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(goalID) == "" {
				return fmt.Errorf("--goal-id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TaskCLI.SaveTask(context.Background(), taskdto.SaveTaskInput{
				GoalID:           goalID,
				Title:            strings.Join(args, " "),
				Description:      description,
				ScheduledDate:    date,
				Difficulty:       difficulty,
				EstimatedMinutes: minutes,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added task %s (%s) on %s\n", out.Title, out.ID, out.ScheduledDate)
			return nil
		},
	}
	add.Flags().StringVar(&goalID, "goal-id", "", "goal id")
	add.Flags().StringVar(&description, "description", "", "task description")
	add.Flags().StringVar(&date, "date", "", "scheduled date (YYYY-MM-DD, default today)")
	add.Flags().StringVar(&difficulty, "difficulty", "", "easy|medium|hard (default medium)")
	add.Flags().IntVar(&minutes, "minutes", 0, "estimated minutes (default 30)")
	task.AddCommand(add)

	task.AddCommand(&cobra.Command{
		Use:   "today",
		Short: "List tasks scheduled for today, pending first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			date := todayDate()
			tasks, err := app.TaskCLI.Today(context.Background(), date)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "nothing scheduled for %s\n", date)
				return nil
			}
			for _, t := range tasks {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%dmin\t%s\n", t.ID, t.Status, t.Difficulty, t.EstimatedMinutes, t.Title)
			}
			return nil
		},
	})

	var listGoalID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List all tasks, or a goal's tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			var tasks []taskdto.TaskOutput
			var err2 error
			if strings.TrimSpace(listGoalID) != "" {
				tasks, err2 = app.TaskCLI.ListByGoal(ctx, listGoalID)
			} else {
				tasks, err2 = app.TaskCLI.ListTasks(ctx)
			}
			if err2 != nil {
				return err2
			}
			if len(tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			for _, t := range tasks {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n", t.ID, t.ScheduledDate, t.Status, t.GoalID, t.Title)
			}
			return nil
		},
	}
	list.Flags().StringVar(&listGoalID, "goal-id", "", "restrict to one goal")
	task.AddCommand(list)

	var completeID string
	complete := &cobra.Command{
		Use:   "complete --id <id>",
		Short: "Mark a task completed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(completeID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TaskCLI.CompleteTask(context.Background(), completeID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed %s at %s\n", out.Title, out.CompletedAt)
			return nil
		},
	}
	complete.Flags().StringVar(&completeID, "id", "", "task id")
	task.AddCommand(complete)

	var skipID string
	skip := &cobra.Command{
		Use:   "skip --id <id>",
		Short: "Mark a task skipped",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(skipID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TaskCLI.SkipTask(context.Background(), skipID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "skipped %s\n", out.Title)
			return nil
		},
	}
	skip.Flags().StringVar(&skipID, "id", "", "task id")
	task.AddCommand(skip)

	return task
}

func newGenerateCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <goal-id>",
		Short: "Generate a week of daily tasks for a goal via the configured model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			result, err := app.AssistantCLI.GenerateForGoal(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "generated %d task(s) for %s\n", len(result.Tasks), result.GoalTitle)
			for _, t := range result.Tasks {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%dmin\t%s\n", t.ScheduledDate, t.Difficulty, t.EstimatedMinutes, t.Title)
			}
			return nil
		},
	}
}

func newAICmd(dataDir *string) *cobra.Command {
	ai := &cobra.Command{Use: "ai", Short: "Assistant endpoint commands"}

	ai.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Verify the configured endpoint answers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			status, err := app.AssistantCLI.TestConnection(context.Background())
			if err != nil {
				return err
			}
			kind := "hosted"
			if status.Local {
				kind = "local"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ok: %s model=%s (%s)\n", status.BaseURL, status.Model, kind)
			return nil
		},
	})

	return ai
}

func newSettingsCmd(dataDir *string) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Settings commands"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			s, err := app.SettingsCLI.GetSettings(context.Background())
			if err != nil {
				return err
			}
			keyState := "not set"
			if s.AIKeySet {
				keyState = "set"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(),
				"openaiBaseUrl: %s\nopenaiApiKey: %s\nmodelName: %s\nnotificationsEnabled: %t\nnotificationTime: %s\ndailyTaskCount: %d\ntheme: %s\n",
				s.AIBaseURL, keyState, s.AIModel, s.NotificationsEnabled, s.NotificationTime, s.DailyTaskCount, s.Theme)
			return nil
		},
	})

	var baseURL, apiKey, model, notificationTime, theme string
	var notifications bool
	var count int
	set := &cobra.Command{
		Use:   "set",
		Short: "Update settings (only the given flags change)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			var patch settingsdto.UpdateSettingsInput
			if cmd.Flags().Changed("base-url") {
				patch.AIBaseURL = &baseURL
			}
			if cmd.Flags().Changed("api-key") {
				patch.AIAPIKey = &apiKey
			}
			if cmd.Flags().Changed("model") {
				patch.AIModel = &model
			}
			if cmd.Flags().Changed("notifications") {
				patch.NotificationsEnabled = &notifications
			}
			if cmd.Flags().Changed("time") {
				patch.NotificationTime = &notificationTime
			}
			if cmd.Flags().Changed("count") {
				patch.DailyTaskCount = &count
			}
			if cmd.Flags().Changed("theme") {
				patch.Theme = &theme
			}
			out, err := app.SettingsCLI.UpdateSettings(context.Background(), patch)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "settings saved (reminder %s at %s)\n",
				map[bool]string{true: "on", false: "off"}[out.NotificationsEnabled], out.NotificationTime)
			return nil
		},
	}
	set.Flags().StringVar(&baseURL, "base-url", "", "OpenAI-compatible base URL")
	set.Flags().StringVar(&apiKey, "api-key", "", "API key")
	set.Flags().StringVar(&model, "model", "", "model name")
	set.Flags().BoolVar(&notifications, "notifications", true, "enable the daily reminder")
	set.Flags().StringVar(&notificationTime, "time", "", "reminder time (HH:mm)")
	set.Flags().IntVar(&count, "count", 0, "daily task count")
	set.Flags().StringVar(&theme, "theme", "", "color theme (dark)")
	settings.AddCommand(set)

	return settings
}

func newRemindCmd(dataDir *string) *cobra.Command {
	remind := &cobra.Command{Use: "remind", Short: "Daily reminder commands"}

	remind.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Arm the reminder scheduler and block until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.ReminderCLI.Arm(context.Background()); err != nil {
				return err
			}
			status, err := app.ReminderCLI.Status(context.Background())
			if err != nil {
				return err
			}
			if !status.Armed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "notifications are disabled; nothing to run")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reminder armed for %s, ctrl+c to stop\n", status.NotificationTime)
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		},
	})

	remind.AddCommand(&cobra.Command{
		Use:   "once",
		Short: "Fire one reminder check now, ignoring the configured time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			result, err := app.ReminderCLI.TriggerNow(context.Background())
			if err != nil {
				return err
			}
			if !result.Fired {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to remind today")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", result.Title, result.Body)
			return nil
		},
	})

	remind.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show reminder scheduler state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			status, err := app.ReminderCLI.Status(context.Background())
			if err != nil {
				return err
			}
			state := "disarmed"
			if status.Armed {
				state = "armed"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (time %s)\n", state, status.NotificationTime)
			return nil
		},
	})

	return remind
}

func newNotifierCmd(dataDir *string) *cobra.Command {
	notifier := &cobra.Command{Use: "notifier", Short: "Notifier plugin commands"}

	notifier.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured notifiers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			infos, err := app.NotifyCLI.ListNotifiers(context.Background())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no notifiers configured")
				return nil
			}
			for _, n := range infos {
				state := "disabled"
				if n.Enabled {
					state = "enabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", n.Name, n.Version, state, n.Binary)
			}
			return nil
		},
	})

	notifier.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check notifier binaries, checksums, and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			results, err := app.NotifyCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tbinary=%t checksum=%t lifecycle=%t", r.Name, r.BinaryReachable, r.ChecksumValid, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\t%s", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var title, body string
	send := &cobra.Command{
		Use:   "send --title <title> --body <body>",
		Short: "Send a message through every enabled notifier",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("--title is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			report, err := app.NotifyCLI.Send(context.Background(), title, body)
			if err != nil {
				return err
			}
			if report.Fallback {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no notifier delivered; message written to stderr")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "delivered via %s\n", strings.Join(report.Delivered, ", "))
			return nil
		},
	}
	send.Flags().StringVar(&title, "title", "", "message title")
	send.Flags().StringVar(&body, "body", "", "message body")
	notifier.AddCommand(send)

	return notifier
}

func newReindexCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the task query index from the state document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			n, err := app.TaskCLI.Reindex(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindexed %d task(s)\n", n)
			return nil
		},
	}
}
