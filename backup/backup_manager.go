package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/models"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/utils"
)

// Manager exporta e restaura o banco em JSON. Um arquivo por backup,
// nomeado backup_YYYYMMDD_HHMMSS.json dentro de Dir.
type Manager struct {
	DB         *gorm.DB
	Dir        string
	MaxBackups int
}

func NewManager(db *gorm.DB, dir string) *Manager {
	return &Manager{
		DB:         db,
		Dir:        dir,
		MaxBackups: 10,
	}
}

type metadata struct {
	CreatedAt time.Time `json:"created_at"`
	Version   string    `json:"version"`
}

// userExport nao carrega o hash de senha: backup nao e canal de credencial.
type userExport struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type snapshot struct {
	Metadata     metadata              `json:"metadata"`
	Users        []userExport          `json:"users"`
	Products     []models.Product      `json:"products"`
	Orders       []models.Order        `json:"orders"`
	History      []models.OrderHistory `json:"order_history"`
	DailyProfits []models.DailyProfit  `json:"daily_profits"`
}

// Stats conta o que entrou no arquivo, por tabela.
type Stats struct {
	Users    int `json:"users"`
	Products int `json:"products"`
	Orders   int `json:"orders"`
	History  int `json:"history"`
}

// Export grava todas as tabelas em um arquivo JSON novo e devolve o
// caminho com as contagens.
func (m *Manager) Export() (string, *Stats, error) {
	if err := os.MkdirAll(m.Dir, 0755); err != nil {
		return "", nil, err
	}

	var snap snapshot
	snap.Metadata = metadata{CreatedAt: time.Now(), Version: "1.0"}

	var users []models.User
	if err := m.DB.Find(&users).Error; err != nil {
		return "", nil, err
	}
	for _, u := range users {
		snap.Users = append(snap.Users, userExport{
			ID:        u.ID,
			Username:  u.Username,
			Role:      u.Role,
			Active:    u.Active,
			CreatedAt: u.CreatedAt,
		})
	}
	if err := m.DB.Find(&snap.Products).Error; err != nil {
		return "", nil, err
	}
	if err := m.DB.Find(&snap.Orders).Error; err != nil {
		return "", nil, err
	}
	if err := m.DB.Find(&snap.History).Error; err != nil {
		return "", nil, err
	}
	if err := m.DB.Find(&snap.DailyProfits).Error; err != nil {
		return "", nil, err
	}

	path := filepath.Join(m.Dir, fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405")))
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", nil, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", nil, err
	}

	stats := &Stats{
		Users:    len(snap.Users),
		Products: len(snap.Products),
		Orders:   len(snap.Orders),
		History:  len(snap.History),
	}

	utils.InfoLogger.Printf("Backup created: %s", path)
	return path, stats, nil
}

// AutoBackup exporta e remove os arquivos mais antigos alem de MaxBackups.
func (m *Manager) AutoBackup() (string, error) {
	path, _, err := m.Export()
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(m.Dir)
	if err != nil {
		return path, err
	}

	var backups []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && filepath.Ext(name) == ".json" && len(name) > 7 && name[:7] == "backup_" {
			backups = append(backups, filepath.Join(m.Dir, name))
		}
	}
	sort.Strings(backups)

	for len(backups) > m.MaxBackups {
		if err := os.Remove(backups[0]); err != nil {
			utils.ErrorLogger.Printf("Failed to remove old backup %s: %v", backups[0], err)
		}
		backups = backups[1:]
	}
	return path, nil
}

// Import restaura produtos, pedidos, historico e lucros a partir de um
// arquivo exportado. Usuarios nao sao tocados. Tudo dentro de uma
// transacao: falhou, nada muda.
func (m *Manager) Import(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err // os.ErrNotExist quando o arquivo nao existe
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("invalid backup file: %w", err)
	}

	err = m.DB.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"daily_profits", "order_histories", "orders", "products"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}

		for _, p := range snap.Products {
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		for _, o := range snap.Orders {
			if err := tx.Create(&o).Error; err != nil {
				return err
			}
		}
		for _, h := range snap.History {
			if err := tx.Create(&h).Error; err != nil {
				return err
			}
		}
		for _, dp := range snap.DailyProfits {
			if err := tx.Create(&dp).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	utils.InfoLogger.Printf("Backup restored: %s", path)
	return nil
}
