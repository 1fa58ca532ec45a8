package devops

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// DBEntry is one server in the parameter store inventory. The same
// list carries the tenant clusters and the console database.
type DBEntry struct {
	Name     string `yaml:"name" json:"name"`
	Host     string `yaml:"host" json:"host"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// GetDSN builds a mysql DSN against the entry. dbname may be empty,
// the schema is switched per request by the DatabaseManager.
func (db DBEntry) GetDSN(dbname string) string {
	host := db.Host
	if !strings.Contains(host, ":") {
		host = host + ":3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True", db.Username, db.Password, host, dbname)
}

func parameterName() string {
	if name := os.Getenv("GUARDLINK_DB_PARAMETER"); name != "" {
		return name
	}
	return "guardlink-databases"
}

var (
	once    sync.Once
	dbList  []DBEntry
	loadErr error
)

// LoadDBConfig reads the database inventory from SSM once per process.
func LoadDBConfig(ctx context.Context) ([]DBEntry, error) {
	once.Do(func() {
		paramName := parameterName()

		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(paramName),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter %s: %w", paramName, err)
			return
		}

		if out.Parameter == nil || out.Parameter.Value == nil {
			loadErr = fmt.Errorf("parameter %s is empty", paramName)
			return
		}

		var parsed []DBEntry
		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		dbList = parsed
	})

	return dbList, loadErr
}

// LoadDatabasesByName keys the inventory by lower-cased entry name for
// environment lookup ("dev", "prod", "console").
func LoadDatabasesByName(ctx context.Context) (map[string]DBEntry, error) {
	entries, err := LoadDBConfig(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]DBEntry)
	for _, entry := range entries {
		result[strings.ToLower(entry.Name)] = entry
	}
	return result, nil
}
