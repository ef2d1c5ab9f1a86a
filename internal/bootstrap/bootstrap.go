package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	adviceinadapter "lifebalance/internal/modules/advice/adapter/in"
	adviceoutadapter "lifebalance/internal/modules/advice/adapter/out"
	adviceservice "lifebalance/internal/modules/advice/service"
	adviceusecase "lifebalance/internal/modules/advice/usecase"
	balanceinadapter "lifebalance/internal/modules/balance/adapter/in"
	balanceoutadapter "lifebalance/internal/modules/balance/adapter/out"
	balanceservice "lifebalance/internal/modules/balance/service"
	balanceusecase "lifebalance/internal/modules/balance/usecase"
	progressinadapter "lifebalance/internal/modules/progress/adapter/in"
	progressoutadapter "lifebalance/internal/modules/progress/adapter/out"
	progressservice "lifebalance/internal/modules/progress/service"
	progressusecase "lifebalance/internal/modules/progress/usecase"
	"lifebalance/internal/platform/clock"
	"lifebalance/internal/platform/config"
	"lifebalance/internal/platform/id"
	"lifebalance/internal/platform/logbook"
	uiapp "lifebalance/internal/ui/app"
)

type App struct {
	VaultPath   string
	BalanceCLI  balanceinadapter.CLIHandler
	ProgressCLI progressinadapter.CLIHandler
	AdviceCLI   adviceinadapter.CLIHandler
	Log         *logbook.Logbook
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	log, err := logbook.New(cfg.LogPath, clk)
	if err != nil {
		return nil, fmt.Errorf("open logbook: %w", err)
	}

	scoreProjector, err := balanceoutadapter.NewSQLiteScoreProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new score projector: %w", err)
	}
	balanceUC := balanceusecase.NewInteractor(balanceservice.NewBalanceService(
		clk,
		ids,
		cfg.RiskFreeRate,
		balanceoutadapter.NewVaultMetricStore(cfg.VaultPath),
		scoreProjector,
		log,
	), log)

	historyProjector, err := progressoutadapter.NewSQLiteHistoryProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new history projector: %w", err)
	}
	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		clk,
		progressoutadapter.NewYAMLPlanStore(cfg.VaultPath),
		progressoutadapter.NewYAMLPlanSource(),
		historyProjector,
		log,
	), log)

	adviceUC := adviceusecase.NewInteractor(adviceservice.NewAdviceService(
		adviceoutadapter.NewBalanceRatingAdapter(balanceUC),
	))

	return &App{
		VaultPath:   cfg.VaultPath,
		BalanceCLI:  balanceinadapter.NewCLIHandler(balanceUC),
		ProgressCLI: progressinadapter.NewCLIHandler(progressUC),
		AdviceCLI:   adviceinadapter.NewCLIHandler(adviceUC),
		Log:         log,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.VaultPath, app.BalanceCLI, app.ProgressCLI, app.AdviceCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
