package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	assistantinadapter "moonlight/internal/modules/assistant/adapter/in"
	assistantoutadapter "moonlight/internal/modules/assistant/adapter/out"
	assistantservice "moonlight/internal/modules/assistant/service"
	assistantusecase "moonlight/internal/modules/assistant/usecase"
	goalinadapter "moonlight/internal/modules/goal/adapter/in"
	goaloutadapter "moonlight/internal/modules/goal/adapter/out"
	goalservice "moonlight/internal/modules/goal/service"
	goalusecase "moonlight/internal/modules/goal/usecase"
	notifyinadapter "moonlight/internal/modules/notify/adapter/in"
	notifyoutadapter "moonlight/internal/modules/notify/adapter/out"
	notifyservice "moonlight/internal/modules/notify/service"
	notifyusecase "moonlight/internal/modules/notify/usecase"
	reminderinadapter "moonlight/internal/modules/reminder/adapter/in"
	reminderoutadapter "moonlight/internal/modules/reminder/adapter/out"
	reminderservice "moonlight/internal/modules/reminder/service"
	reminderusecase "moonlight/internal/modules/reminder/usecase"
	settingsinadapter "moonlight/internal/modules/settings/adapter/in"
	settingsoutadapter "moonlight/internal/modules/settings/adapter/out"
	settingsservice "moonlight/internal/modules/settings/service"
	settingsusecase "moonlight/internal/modules/settings/usecase"
	taskinadapter "moonlight/internal/modules/task/adapter/in"
	taskoutadapter "moonlight/internal/modules/task/adapter/out"
	taskservice "moonlight/internal/modules/task/service"
	taskusecase "moonlight/internal/modules/task/usecase"
	"moonlight/internal/platform/clock"
	"moonlight/internal/platform/config"
	"moonlight/internal/platform/id"
	"moonlight/internal/platform/statefile"
	uiapp "moonlight/internal/ui/app"
)

type App struct {
	GoalCLI      goalinadapter.CLIHandler
	TaskCLI      taskinadapter.CLIHandler
	AssistantCLI assistantinadapter.CLIHandler
	SettingsCLI  settingsinadapter.CLIHandler
	ReminderCLI  reminderinadapter.CLIHandler
	NotifyCLI    notifyinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}
	state := statefile.New(cfg.StatePath)

	taskStore := taskoutadapter.NewStateTaskStore(state)
	taskProjector, err := taskoutadapter.NewSQLiteTaskProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new task projector: %w", err)
	}

	goalStore := goaloutadapter.NewStateGoalStore(state)
	goalSvc := goalservice.NewGoalService(clk, ids, goalStore)
	goalUC := goalusecase.NewInteractor(goalSvc,
		goaloutadapter.NewTaskCascadeAdapter(taskStore, taskProjector))

	taskSvc := taskservice.NewTaskService(clk, ids, taskStore)
	taskUC := taskusecase.NewInteractor(taskSvc, taskProjector, goalUC)

	notifyUC := notifyusecase.NewInteractor(notifyservice.NewNotifyService(
		notifyoutadapter.NewFileManifestStore(cfg.DataDir, cfg.NotifiersPath),
		notifyoutadapter.NewGRPCHost(),
		os.Stderr,
	))

	settingsStore := settingsoutadapter.NewStateSettingsStore(state)
	reminderSvc := reminderservice.NewReminderService(
		clk,
		reminderoutadapter.NewSettingsAdapter(settingsStore),
		reminderoutadapter.NewTaskQueryAdapter(taskUC),
		reminderoutadapter.NewNotifyDispatchAdapter(notifyUC),
	)
	reminderUC := reminderusecase.NewInteractor(reminderSvc, clk)

	settingsUC := settingsusecase.NewInteractor(
		settingsservice.NewSettingsService(settingsStore), reminderUC)

	assistantUC := assistantusecase.NewInteractor(
		assistantservice.NewAssistantService(
			clk,
			assistantoutadapter.NewSettingsPreferenceSource(settingsStore),
			assistantoutadapter.NewOpenAIClient(http.DefaultClient),
		),
		goalUC,
		taskUC,
	)

	return &App{
		GoalCLI:      goalinadapter.NewCLIHandler(goalUC),
		TaskCLI:      taskinadapter.NewCLIHandler(taskUC),
		AssistantCLI: assistantinadapter.NewCLIHandler(assistantUC),
		SettingsCLI:  settingsinadapter.NewCLIHandler(settingsUC),
		ReminderCLI:  reminderinadapter.NewCLIHandler(reminderUC),
		NotifyCLI:    notifyinadapter.NewCLIHandler(notifyUC),
	}, nil
}

// RunTUI arms the reminder scheduler for the life of the program and hands
// control to the root Bubble Tea model.
func RunTUI(app *App) error {
	if err := app.ReminderCLI.Arm(context.Background()); err != nil {
		return fmt.Errorf("arm reminder: %w", err)
	}
	model := uiapp.NewModel(
		app.GoalCLI,
		app.TaskCLI,
		app.AssistantCLI,
		app.SettingsCLI,
		app.ReminderCLI,
		app.NotifyCLI,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
