package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"gorm.io/gorm"

	"guardlink.com.au/guardlink/core"
	"guardlink.com.au/guardlink/infrastructure/communication"
	"guardlink.com.au/guardlink/infrastructure/devops"
	pcore "guardlink.com.au/guardlink/patrol/core"
)

// The read path already settles missed calls lazily. This job exists so
// a shift nobody looks at still shows up in the ops channel the same
// night, running the identical window arithmetic across every tenant.

type SweepEvent struct {
	Databases *[]string `json:"databases"`
	Env       string    `json:"env"`
}

type SweepStats struct {
	Missed int64 `json:"missed"`
}

func Sweep(ctx context.Context, dsn string, databases *[]string) (map[string]SweepStats, error) {
	loc := pcore.Location()
	now := time.Now().UTC()

	dm, err := core.New(dsn, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	dm.LogLevel = core.LogLevelError
	defer dm.Close()

	var targetDatabases []string
	if databases == nil {
		fmt.Printf("[INFO] No databases provided, fetching all databases...\n")
		targetDatabases, err = dm.GetAllDatabases(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get all databases: %w", err)
		}
	} else {
		targetDatabases = *databases
	}

	results := make(map[string]SweepStats)
	for _, dbName := range targetDatabases {
		fmt.Printf("[INFO] Sweeping database: %s\n", dbName)
		err := dm.Exec(ctx, dbName, func(db *gorm.DB) error {
			missed, err := pcore.SweepSchemaMissedCalls(db, now, loc)
			if err != nil {
				return err
			}
			results[dbName] = SweepStats{Missed: missed}
			return nil
		})
		if err != nil {
			fmt.Printf("[ERROR] failed to sweep database %s: %v\n", dbName, err)
			continue
		}
	}

	fmt.Printf("[INFO] Finished sweeping %d database(s)\n", len(targetDatabases))
	return results, nil
}

func notify(results map[string]SweepStats) {
	var total int64
	var lines []string
	for dbName, stats := range results {
		total += stats.Missed
		if stats.Missed > 0 {
			lines = append(lines, fmt.Sprintf("%s: %d missed", dbName, stats.Missed))
		}
	}
	if total == 0 {
		return
	}

	ops := communication.ConnectSlack()
	message := fmt.Sprintf("Check-call sweep settled %d missed call(s)\n%s", total, strings.Join(lines, "\n"))
	if err := ops.Error(message); err != nil {
		fmt.Printf("[ERROR] failed to notify slack: %v\n", err)
	}
}

func HandleRequest(ctx context.Context, event SweepEvent) (map[string]SweepStats, error) {
	eventJson, _ := json.Marshal(event)
	fmt.Printf("[INFO] Event: %s\n", string(eventJson))

	env := strings.ToLower(event.Env)
	if env == "" {
		return nil, fmt.Errorf("environment (env) is required")
	}

	dbs, err := devops.LoadDatabasesByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load databases from SSM: %w", err)
	}

	entry, ok := dbs[env]
	if !ok {
		return nil, fmt.Errorf("environment '%s' not found in parameter store", env)
	}
	dsn := entry.GetDSN("")
	fmt.Printf("[INFO] Using DSN for environment: %s\n", env)

	results, err := Sweep(ctx, dsn, event.Databases)
	if err != nil {
		return nil, err
	}

	notify(results)
	return results, nil
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
	} else {
		results, err := HandleRequest(context.Background(), SweepEvent{Env: "dev"})
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			os.Exit(1)
		}
		resJson, _ := json.MarshalIndent(results, "", "  ")
		fmt.Printf("[SUCCESS] Results:\n%s\n", string(resJson))
	}
}
