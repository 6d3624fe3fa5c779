// Escaneo de stock bajo: lo dispara un cron externo, hace una pasada y
// termina. El motor nunca se agenda a sí mismo; reintentos y timeouts son
// responsabilidad del scheduler.
package main

import (
	"context"
	"flag"

	"github.com/jhoicas/bom-engine/internal/application/alerts"
	"github.com/jhoicas/bom-engine/internal/application/dto"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
	"github.com/jhoicas/bom-engine/internal/infrastructure/notify"
	"github.com/jhoicas/bom-engine/internal/infrastructure/postgres"
	"github.com/jhoicas/bom-engine/pkg/config"
	"github.com/jhoicas/bom-engine/pkg/logger"
)

func main() {
	tenantFlag := flag.String("tenant", "", "escanear solo este tenant (vacío = todos)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando escaneo de stock bajo")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	materialRepo := postgres.NewMaterialRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)

	var notifier repository.AlertNotifier
	if cfg.Scan.NotifyOnAlert {
		notifier = notify.NewLogNotifier(log)
	}
	scanUC := alerts.NewScanUseCase(materialRepo, alertRepo, notifier, log)

	tenantID := *tenantFlag
	if tenantID == "" {
		tenantID = cfg.Scan.TenantID
	}

	var summary dto.ScanSummaryDTO
	if tenantID != "" {
		summary, err = scanUC.ScanTenant(ctx, tenantID)
	} else {
		summary, err = scanUC.ScanAll(ctx)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("escaneo falló")
	}
	log.Info().
		Int("tenants", summary.TenantsScanned).
		Int("created", summary.AlertsCreated).
		Int("updated", summary.AlertsUpdated).
		Int("skipped", summary.AlertsSkipped).
		Int("failed", summary.Failed).
		Msg("escaneo terminado")
}
