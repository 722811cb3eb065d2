// Package storage 감시 상품을 파일 시스템에 영속화하는 저장소 구현입니다.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	log "github.com/sirupsen/logrus"

	"github.com/darkkaiser/pricepulse-server/internal/service/watch"
	"github.com/darkkaiser/pricepulse-server/pkg/concurrency"
)

// component Watch 서비스 Storage의 로깅용 컴포넌트 이름
const component = "watch.storage"

// defaultDataDirectory 감시 상품을 저장할 기본 디렉토리 이름입니다.
const defaultDataDirectory = "data"

// tempFilePattern 원자적 쓰기에 사용되는 임시 파일의 이름 패턴입니다.
const tempFilePattern = "item-*.tmp"

// itemFilePattern 감시 상품 파일의 이름 패턴입니다.
const itemFilePattern = "item-*.json"

// fileItemStore 감시 상품을 상품당 하나의 JSON 파일로 저장하는 저장소입니다.
//
// [파일 구조]
//   - item-{정제된ID}-{hash}.json: 감시 상품이 JSON 형식으로 저장됩니다.
//   - item-*.tmp: 저장 중 생성되는 임시 파일입니다.
type fileItemStore struct {
	baseDir string

	// locks 동일한 파일에 대한 동시 읽기/쓰기를 방지하기 위한 파일별 뮤텍스입니다.
	locks *concurrency.KeyedMutex
}

var _ watch.Store = (*fileItemStore)(nil)

// NewFileItemStore 파일 시스템 기반의 감시 상품 저장소를 생성합니다.
//
// dir이 빈 문자열이면 기본 디렉토리("data")를 사용하며, 상대 경로는 절대 경로로 변환됩니다.
// 초기화 시 디렉토리를 생성하여 접근 권한 문제를 조기에 발견하고,
// 이전 실행에서 남은 임시 파일을 백그라운드에서 정리합니다.
func NewFileItemStore(dir string) (watch.Store, error) {
	if dir == "" {
		dir = defaultDataDirectory
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, NewErrDirectoryAccessFailed(err, dir)
	}

	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, NewErrDirectoryAccessFailed(err, absDir)
	}

	s := &fileItemStore{
		baseDir: absDir,

		locks: concurrency.NewKeyedMutex(),
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				applog.WithComponentAndFields(component, log.Fields{
					"base_dir": s.baseDir,
					"panic":    r,
				}).Error("임시 파일 정리 중단: 백그라운드 작업 패닉 발생")
			}
		}()

		s.cleanupStaleTempFiles()
	}()

	return s, nil
}

// cleanupStaleTempFiles 비정상 종료로 남겨진 오래된 임시 파일을 정리합니다.
// 최근 1시간 이내에 수정된 파일은 사용 중일 수 있으므로 건너뜁니다.
func (s *fileItemStore) cleanupStaleTempFiles() {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		applog.WithComponentAndFields(component, log.Fields{
			"dir":   s.baseDir,
			"error": err,
		}).Warn("임시 파일 정리 중단: 디렉토리 조회 실패")

		return
	}

	threshold := time.Now().Add(-1 * time.Hour)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matched, _ := filepath.Match(tempFilePattern, entry.Name())
		if !matched {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(threshold) {
			continue
		}

		fullPath := filepath.Join(s.baseDir, entry.Name())
		if err := os.Remove(fullPath); err != nil {
			applog.WithComponentAndFields(component, log.Fields{
				"file":  fullPath,
				"error": err,
			}).Warn("임시 파일 삭제 실패")
		}
	}
}

// Save 감시 상품을 파일에 저장합니다. 동일한 ID가 이미 존재하면 덮어씁니다.
//
// "임시 파일 쓰기 → fsync → 원자적 rename" 전략을 사용하므로 저장 도중
// 프로세스가 종료되어도 기존 파일이 중간 상태로 깨지지 않습니다.
func (s *fileItemStore) Save(item *watch.Item) error {
	filename, err := s.resolveSafePath(item.ItemID)
	if err != nil {
		return err
	}

	// 직렬화는 Lock 획득 전에 수행하여 Lock 보유 시간을 최소화합니다.
	data, err := json.MarshalIndent(item, "", "\t")
	if err != nil {
		return NewErrJSONMarshalFailed(err)
	}

	lockKey := strings.ToLower(filename)
	s.locks.Lock(lockKey)
	defer s.locks.Unlock(lockKey)

	return s.writeAtomic(filename, data)
}

// Load 지정된 ID의 감시 상품을 파일에서 읽어옵니다.
func (s *fileItemStore) Load(id watch.ItemID) (*watch.Item, error) {
	filename, err := s.resolveSafePath(id)
	if err != nil {
		return nil, err
	}

	lockKey := strings.ToLower(filename)
	s.locks.Lock(lockKey)
	data, readErr := os.ReadFile(filename)
	s.locks.Unlock(lockKey)

	if readErr != nil {
		if os.IsNotExist(readErr) {
			return nil, watch.ErrItemNotFound
		}
		return nil, NewErrItemReadFailed(readErr)
	}

	var item watch.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, NewErrJSONUnmarshalFailed(err)
	}

	return &item, nil
}

// Delete 지정된 ID의 감시 상품 파일을 삭제합니다.
func (s *fileItemStore) Delete(id watch.ItemID) error {
	filename, err := s.resolveSafePath(id)
	if err != nil {
		return err
	}

	lockKey := strings.ToLower(filename)
	s.locks.Lock(lockKey)
	defer s.locks.Unlock(lockKey)

	if err := os.Remove(filename); err != nil {
		if os.IsNotExist(err) {
			return watch.ErrItemNotFound
		}
		return NewErrItemDeleteFailed(err)
	}

	return nil
}

// List 저장된 모든 감시 상품을 반환합니다.
// 역직렬화할 수 없는 손상된 파일은 경고 로그만 남기고 건너뜁니다.
func (s *fileItemStore) List() ([]*watch.Item, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, NewErrItemReadFailed(err)
	}

	items := make([]*watch.Item, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matched, _ := filepath.Match(itemFilePattern, entry.Name())
		if !matched {
			continue
		}

		fullPath := filepath.Join(s.baseDir, entry.Name())

		lockKey := strings.ToLower(fullPath)
		s.locks.Lock(lockKey)
		data, readErr := os.ReadFile(fullPath)
		s.locks.Unlock(lockKey)

		if readErr != nil {
			// 목록 조회 도중 삭제된 파일은 정상적인 경합입니다.
			if os.IsNotExist(readErr) {
				continue
			}
			return nil, NewErrItemReadFailed(readErr)
		}

		var item watch.Item
		if err := json.Unmarshal(data, &item); err != nil {
			applog.WithComponentAndFields(component, log.Fields{
				"file":  fullPath,
				"error": err,
			}).Warn("감시 상품 파일 역직렬화 실패: 손상된 파일을 건너뜁니다")

			continue
		}

		items = append(items, &item)
	}

	return items, nil
}

// resolveSafePath 상품 ID로부터 검증된 파일 경로를 생성합니다.
//
// 생성된 경로가 저장 디렉토리를 벗어나지 않는지 filepath.Rel 기반으로 검증하여
// 경로 이탈(Path Traversal) 시도를 차단합니다.
func (s *fileItemStore) resolveSafePath(id watch.ItemID) (string, error) {
	filename := generateFilename(id)

	cleanPath := filepath.Clean(filepath.Join(s.baseDir, filename))

	rel, err := filepath.Rel(s.baseDir, cleanPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		applog.WithComponentAndFields(component, log.Fields{
			"item_id":  id,
			"filename": filename,
			"base_dir": s.baseDir,
		}).Error("파일 경로 생성 차단: 경로 이탈 시도 감지")

		return "", ErrPathTraversalDetected
	}

	return cleanPath, nil
}

// writeAtomic 데이터를 임시 파일에 쓰고 fsync한 뒤 원자적으로 이름을 변경합니다.
func (s *fileItemStore) writeAtomic(filename string, data []byte) error {
	dir := filepath.Dir(filename)

	// rename이 원자적으로 동작하려면 임시 파일이 같은 디렉토리에 있어야 합니다.
	tmpFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return NewErrItemWriteFailed(err)
	}
	tmpPath := tmpFile.Name()

	// Windows에서는 열린 파일을 삭제할 수 없으므로 Close가 Remove보다 먼저 실행되어야 합니다.
	defer os.Remove(tmpPath)
	defer tmpFile.Close()

	if _, err := tmpFile.Write(data); err != nil {
		return NewErrItemWriteFailed(err)
	}

	// 운영체제 버퍼에만 있는 상태에서 전원이 차단되면 데이터가 유실됩니다.
	if err := tmpFile.Sync(); err != nil {
		return NewErrItemWriteFailed(err)
	}

	if err := tmpFile.Close(); err != nil {
		return NewErrItemWriteFailed(err)
	}

	if err := os.Rename(tmpPath, filename); err != nil {
		return NewErrItemWriteFailed(err)
	}

	return nil
}
