// persistence/interface.go
package persistence

import (
	"fmt"

	"github.com/SecurityPuppy/plugdj-node/models"
)

// Database 播放历史归档接口
// The archive is append-only: the engine never reads state back from it.
type Database interface {
	SavePlayRecord(rec *models.PlayRecord) error
	GetDJStats(djID int64) (*models.DJStats, error)
	Close() error
}

// 错误定义
var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)
