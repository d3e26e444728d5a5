package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	evbus "github.com/vardius/message-bus"

	"github.com/argus-sec/argus-portal/internal/adapters"
	"github.com/argus-sec/argus-portal/internal/adapters/reportstore"
	"github.com/argus-sec/argus-portal/internal/app/reports"
	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

const (
	dsnFlag = "dsn"
)

var (
	cfg           *config.Config
	repo          *adapters.SqlRepo
	reportManager *reports.Manager
)

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  dsnFlag,
		Value: "./sqlite.db",
		Usage: "A DSN for the data store.",
	},
}

var commands = []*cli.Command{
	{
		Name:    "list",
		Aliases: []string{"l"},
		Usage:   "list audits or reports",
		Subcommands: []*cli.Command{
			{
				Name:  "audits",
				Usage: "list all audit records",
				Action: func(c *cli.Context) error {
					audits, err := repo.GetAllAudits(cliContext())
					if err != nil {
						return errors.WithMessage(err, "failed to get all audits")
					}

					fmt.Println("Audits:")
					for i, audit := range audits {
						fmt.Printf(" %d\t%s (%s, %s)\n", i, audit.Title, audit.Status,
							audit.ScheduledDate.Format("2006-01-02"))
					}

					return nil
				},
			},
			{
				Name:  "reports",
				Usage: "list all report records",
				Action: func(c *cli.Context) error {
					allReports, err := repo.GetAllReports(cliContext())
					if err != nil {
						return errors.WithMessage(err, "failed to get all reports")
					}

					fmt.Println("Reports:")
					for i, report := range allReports {
						fmt.Printf(" %d\t%s (%s, %d bytes)\n", i, report.Title, report.Type,
							report.FileSize)
					}

					return nil
				},
			},
		},
	},
	{
		Name:      "generate",
		Aliases:   []string{"g"},
		Usage:     "generate a report document",
		ArgsUsage: "<audit_summary|vulnerability_report|compliance_report|executive_summary>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return errors.New("missing/invalid report type")
			}
			reportType := domain.ReportType(strings.TrimSpace(c.Args().Get(0)))

			report, err := reportManager.GenerateReport(cliContext(), reportType, nil)
			if err != nil {
				return errors.WithMessage(err, "failed to generate report")
			}

			fmt.Println("Generated report", report.Id, "-", report.Title)

			return nil
		},
	},
	{
		Name:  "seed",
		Usage: "write demo users, assets, vulnerabilities and a sample audit",
		Action: func(c *cli.Context) error {
			return seedDemoData(cliContext())
		},
	},
}

// cliContext returns a context with system privileges, CreatedBy columns of
// seeded records carry the system user id.
func cliContext() context.Context {
	return domain.SetUserInfo(context.Background(), domain.SystemUserInfo())
}

func seedDemoData(ctx context.Context) error {
	existingUsers, err := repo.GetAllUsers(ctx)
	if err != nil {
		return errors.WithMessage(err, "failed to check for existing users")
	}
	if len(existingUsers) > 0 {
		fmt.Println("Database already contains users, nothing to do")
		return nil
	}

	admin, err := createUser(ctx, "admin", "Admin", "User", "admin@argus.local", domain.UserRoleAdmin)
	if err != nil {
		return err
	}
	auditor, err := createUser(ctx, "auditor", "Security", "Auditor", "auditor@argus.local", domain.UserRoleAuditor)
	if err != nil {
		return err
	}

	webServer, err := createAsset(ctx, "Web Server", "server", "10.0.1.10", "high")
	if err != nil {
		return err
	}
	dbServer, err := createAsset(ctx, "Database Server", "server", "10.0.1.20", "critical")
	if err != nil {
		return err
	}
	firewall, err := createAsset(ctx, "Office Firewall", "network", "10.0.0.1", "critical")
	if err != nil {
		return err
	}

	vulns := []struct {
		title    string
		severity domain.VulnerabilitySeverity
		status   domain.VulnerabilityStatus
		assetId  domain.AssetIdentifier
		age      int
	}{
		{"Outdated TLS configuration", domain.VulnerabilitySeverityHigh, domain.VulnerabilityStatusOpen, webServer.Id, 14},
		{"SQL injection in legacy endpoint", domain.VulnerabilitySeverityCritical, domain.VulnerabilityStatusInProgress, dbServer.Id, 7},
		{"Default SNMP community string", domain.VulnerabilitySeverityMedium, domain.VulnerabilityStatusResolved, firewall.Id, 30},
	}
	for _, v := range vulns {
		if err := createVulnerability(ctx, v.title, v.severity, v.status, v.assetId, v.age); err != nil {
			return err
		}
	}

	audit, err := repo.SaveAudit(ctx, 0, func(a *domain.Audit) (*domain.Audit, error) {
		a.Title = "Quarterly Infrastructure Audit"
		a.Type = "internal"
		a.Scope = domain.StringList{"network", "servers"}
		a.AuditorId = auditor.Id
		a.AuditeeId = admin.Id
		a.ScheduledDate = time.Now().AddDate(0, 0, 7)
		a.Frequency = "quarterly"
		a.Assets = []domain.Asset{*webServer, *dbServer}
		return a, nil
	})
	if err != nil {
		return errors.WithMessage(err, "failed to seed sample audit")
	}

	fmt.Println("Seeded demo data, sample audit id:", audit.Id)

	return nil
}

func createUser(
	ctx context.Context,
	username, firstname, lastname, email string,
	role domain.UserRole,
) (*domain.User, error) {
	var created *domain.User
	err := repo.SaveUser(ctx, 0, func(u *domain.User) (*domain.User, error) {
		u.Username = username
		u.Firstname = firstname
		u.Lastname = lastname
		u.Email = email
		u.Role = role
		created = u
		return u, nil
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to seed user %s", username)
	}

	return created, nil
}

func createAsset(ctx context.Context, name, assetType, address, criticality string) (*domain.Asset, error) {
	var created *domain.Asset
	err := repo.SaveAsset(ctx, 0, func(a *domain.Asset) (*domain.Asset, error) {
		a.Name = name
		a.Type = assetType
		a.Address = address
		a.Criticality = criticality
		a.Status = domain.AssetStatusActive
		created = a
		return a, nil
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to seed asset %s", name)
	}

	return created, nil
}

func createVulnerability(
	ctx context.Context,
	title string,
	severity domain.VulnerabilitySeverity,
	status domain.VulnerabilityStatus,
	assetId domain.AssetIdentifier,
	ageDays int,
) error {
	err := repo.SaveVulnerability(ctx, 0, func(v *domain.Vulnerability) (*domain.Vulnerability, error) {
		v.Title = title
		v.Severity = severity
		v.Status = status
		v.AssetId = &assetId
		v.DiscoveredDate = time.Now().AddDate(0, 0, -ageDays)
		if status == domain.VulnerabilityStatusResolved {
			resolved := time.Now().AddDate(0, 0, -1)
			v.ResolvedDate = &resolved
		}
		return v, nil
	})
	if err != nil {
		return errors.WithMessagef(err, "failed to seed vulnerability %s", title)
	}

	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "argus-cli"
	app.Version = "0.0.1"
	app.Usage = "Argus Portal CLI client"
	app.EnableBashCompletion = true
	app.Commands = commands
	app.Flags = globalFlags
	app.Before = func(c *cli.Context) error {
		var err error
		cfg, err = config.GetConfig()
		if err != nil {
			return errors.WithMessage(err, "failed to load configuration")
		}
		cfg.Database = config.DatabaseConfig{
			Type: config.DatabaseSQLite,
			DSN:  c.String(dsnFlag),
		}

		rawDb, err := adapters.NewDatabase(cfg.Database)
		if err != nil {
			return errors.WithMessage(err, "failed to initialize persistent store")
		}

		repo, err = adapters.NewSqlRepository(rawDb)
		if err != nil {
			return errors.WithMessage(err, "failed to initialize repository")
		}

		store, err := reportstore.New(cfg.Storage)
		if err != nil {
			return errors.WithMessage(err, "failed to initialize report store")
		}

		reportManager, err = reports.NewReportManager(cfg, evbus.New(cfg.Advanced.EventBusQueueSize), repo, store)
		if err != nil {
			return errors.WithMessage(err, "report manager failed to initialize")
		}

		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
