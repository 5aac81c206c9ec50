package svscan

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dermascan/internal/app/domains/entity/etscan"
	"dermascan/internal/app/domains/modules/mdscan"
	"dermascan/internal/app/infra/predictor"
	"dermascan/internal/app/pkg/errorx"
)

// nopLogger 测试用空日志
type nopLogger struct{}

func (nopLogger) Debugf(ctx context.Context, format string, args ...interface{}) {}
func (nopLogger) Infof(ctx context.Context, format string, args ...interface{})  {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...interface{})  {}
func (nopLogger) Errorf(ctx context.Context, format string, args ...interface{}) {}
func (nopLogger) Sync() error                                                    { return nil }

// fakeScanRepo 内存版扫描仓储
type fakeScanRepo struct {
	mu        sync.Mutex
	scans     map[string]*etscan.Scan
	createErr error
}

func newFakeScanRepo() *fakeScanRepo {
	return &fakeScanRepo{scans: make(map[string]*etscan.Scan)}
}

func (r *fakeScanRepo) Create(ctx context.Context, scan *etscan.Scan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	cp := *scan
	r.scans[scan.ID] = &cp
	return nil
}

func (r *fakeScanRepo) GetByID(ctx context.Context, scanID string) (*etscan.Scan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	scan, ok := r.scans[scanID]
	if !ok {
		return nil, errorx.ErrScanNotFound
	}
	cp := *scan
	return &cp, nil
}

func (r *fakeScanRepo) ListByOwner(ctx context.Context, ownerID int64, page, pageSize int) ([]*etscan.Scan, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned := make([]*etscan.Scan, 0)
	for _, scan := range r.scans {
		if scan.OwnerID == ownerID {
			cp := *scan
			owned = append(owned, &cp)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := int64(len(owned))
	start := (page - 1) * pageSize
	if start >= len(owned) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(owned) {
		end = len(owned)
	}
	return owned[start:end], total, nil
}

func (r *fakeScanRepo) UpdateNotes(ctx context.Context, scanID string, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	scan, ok := r.scans[scanID]
	if !ok {
		return errorx.ErrScanNotFound
	}
	scan.Notes = notes
	scan.UpdatedAt = time.Now()
	return nil
}

func (r *fakeScanRepo) Delete(ctx context.Context, scanID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.scans[scanID]; !ok {
		return errorx.ErrScanNotFound
	}
	delete(r.scans, scanID)
	return nil
}

// fakeBlobStore 内存版图片存储
type fakeBlobStore struct {
	mu        sync.Mutex
	blobs     map[string][]byte
	seq       int
	deleteErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (s *fakeBlobStore) Put(ctx context.Context, data []byte, originalFilename string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	key := fmt.Sprintf("blob-%d", s.seq)
	s.blobs[key] = data
	return key, nil
}

func (s *fakeBlobStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.blobs, key)
	return nil
}

func (s *fakeBlobStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// stubPredictor 测试桩：强制真实分支或降级分支
type stubPredictor struct {
	result *predictor.Result
	err    error
	calls  int
}

func (p *stubPredictor) Predict(ctx context.Context, image []byte, filename string) (*predictor.Result, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

// recordingNotifier 记录发布的事件
type recordingNotifier struct {
	published []*etscan.Scan
	err       error
}

func (n *recordingNotifier) PublishScanAnalyzed(ctx context.Context, scan *etscan.Scan) error {
	if n.err != nil {
		return n.err
	}
	n.published = append(n.published, scan)
	return nil
}

func newTestService(repo *fakeScanRepo, store *fakeBlobStore, pred predictor.Predictor, notifier Notifier) *ScanService {
	return NewScanService(mdscan.NewScanModule(repo), store, pred, notifier, nopLogger{})
}

func validUpload() *Upload {
	return &Upload{
		Data:     make([]byte, 2<<20), // 2MB
		Filename: "lesion.jpg",
		MimeType: "image/jpeg",
	}
}

func TestAnalyzeBenignPrediction(t *testing.T) {
	repo := newFakeScanRepo()
	store := newFakeBlobStore()
	pred := &stubPredictor{result: &predictor.Result{RawRiskLevel: "benign", Confidence: 92}}
	notifier := &recordingNotifier{}
	svc := newTestService(repo, store, pred, notifier)

	scan, err := svc.Analyze(context.Background(), 100, validUpload())
	require.NoError(t, err)

	assert.Equal(t, etscan.RiskLow, scan.Result.RiskLevel)
	assert.Equal(t, float64(92), scan.Result.Confidence)
	assert.Equal(t, "Low Risk", scan.Result.Prediction)
	assert.Equal(t, recommendationsFor(etscan.RiskLow), scan.Recommendations)
	assert.Equal(t, int64(100), scan.OwnerID)
	assert.NotEmpty(t, scan.ID)

	// 记录已落库、图片已写入、事件已发布
	persisted, err := repo.GetByID(context.Background(), scan.ID)
	require.NoError(t, err)
	assert.Equal(t, scan.ImagePath, persisted.ImagePath)
	assert.Equal(t, 1, store.count())
	require.Len(t, notifier.published, 1)
	assert.Equal(t, scan.ID, notifier.published[0].ID)
}

func TestAnalyzeMalignantMapsToHigh(t *testing.T) {
	repo := newFakeScanRepo()
	store := newFakeBlobStore()
	pred := &stubPredictor{result: &predictor.Result{
		Prediction:   "malignant",
		RawRiskLevel: "malignant",
		Confidence:   87.5,
	}}
	svc := newTestService(repo, store, pred, nil)

	scan, err := svc.Analyze(context.Background(), 100, validUpload())
	require.NoError(t, err)

	assert.Equal(t, etscan.RiskHigh, scan.Result.RiskLevel)
	// 上游标签存在时原样保留
	assert.Equal(t, "malignant", scan.Result.Prediction)
	assert.Equal(t, recommendationsFor(etscan.RiskHigh), scan.Recommendations)
}

func TestAnalyzeUnknownLabelMapsToHigh(t *testing.T) {
	repo := newFakeScanRepo()
	store := newFakeBlobStore()
	pred := &stubPredictor{result: &predictor.Result{RawRiskLevel: "suspicious", Confidence: 60}}
	svc := newTestService(repo, store, pred, nil)

	scan, err := svc.Analyze(context.Background(), 100, validUpload())
	require.NoError(t, err)

	assert.Equal(t, etscan.RiskHigh, scan.Result.RiskLevel)
}

func TestAnalyzeFallbackWhenPredictionUnavailable(t *testing.T) {
	repo := newFakeScanRepo()
	store := newFakeBlobStore()
	pred := &stubPredictor{err: errorx.ErrPredictionUnavailable}
	svc := newTestService(repo, store, pred, nil)

	scan, err := svc.Analyze(context.Background(), 100, &Upload{
		Data:     make([]byte, 1024),
		Filename: "lesion.png",
		MimeType: "image/png",
	})
	require.NoError(t, err)

	assert.True(t, scan.Result.RiskLevel.Valid())
	assert.GreaterOrEqual(t, scan.Result.Confidence, float64(70))
	assert.LessOrEqual(t, scan.Result.Confidence, float64(90))
	assert.Contains(t, scan.Result.Details, "(Fallback mode)")
	assert.Equal(t, recommendationsFor(scan.Result.RiskLevel), scan.Recommendations)

	// 降级不影响落库
	_, err = repo.GetByID(context.Background(), scan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, pred.calls)
}

func TestAnalyzeRejectsOversizeUpload(t *testing.T) {
	repo := newFakeScanRepo()
	store := newFakeBlobStore()
	svc := newTestService(repo, store, &stubPredictor{}, nil)

	_, err := svc.Analyze(context.Background(), 100, &Upload{
		Data:     make([]byte, 6<<20), // 6MB
		Filename: "big.jpg",
		MimeType: "image/jpeg",
	})

	var be *errorx.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 400, be.Code)

	// 拒绝时不得写入图片、不得创建记录
	assert.Equal(t, 0, store.count())
	assert.Empty(t, repo.scans)
}

func TestAnalyzeRejectsMismatchedType(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		mimeType string
	}{
		{"bad extension", "lesion.gif", "image/png"},
		{"bad mime", "lesion.png", "text/plain"},
		{"both bad", "lesion.pdf", "application/pdf"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeScanRepo()
			store := newFakeBlobStore()
			svc := newTestService(repo, store, &stubPredictor{}, nil)

			_, err := svc.Analyze(context.Background(), 100, &Upload{
				Data:     make([]byte, 1024),
				Filename: tc.filename,
				MimeType: tc.mimeType,
			})

			var be *errorx.BusinessError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, 400, be.Code)
			assert.Equal(t, 0, store.count())
		})
	}
}

func TestAnalyzePersistFailureCleansUpBlob(t *testing.T) {
	repo := newFakeScanRepo()
	repo.createErr = errors.New("connection refused")
	store := newFakeBlobStore()
	pred := &stubPredictor{result: &predictor.Result{RawRiskLevel: "benign", Confidence: 90}}
	svc := newTestService(repo, store, pred, nil)

	_, err := svc.Analyze(context.Background(), 100, validUpload())

	var be *errorx.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 500, be.Code)

	// 落库失败后必须回收已写入的图片
	assert.Equal(t, 0, store.count())
}

func TestAnalyzeNotifierFailureDoesNotFailRequest(t *testing.T) {
	repo := newFakeScanRepo()
	store := newFakeBlobStore()
	pred := &stubPredictor{result: &predictor.Result{RawRiskLevel: "benign", Confidence: 90}}
	notifier := &recordingNotifier{err: errors.New("redis down")}
	svc := newTestService(repo, store, pred, notifier)

	scan, err := svc.Analyze(context.Background(), 100, validUpload())
	require.NoError(t, err)
	assert.NotEmpty(t, scan.ID)
}

func TestListScansPagination(t *testing.T) {
	repo := newFakeScanRepo()
	store := newFakeBlobStore()
	svc := newTestService(repo, store, &stubPredictor{}, nil)

	base := time.Now()
	for i := 0; i < 25; i++ {
		scan := &etscan.Scan{
			ID:              fmt.Sprintf("scan-%02d", i),
			OwnerID:         100,
			ImagePath:       fmt.Sprintf("blob-%02d", i),
			Result:          &etscan.Result{Prediction: "Low Risk", Confidence: 80, RiskLevel: etscan.RiskLow},
			Recommendations: recommendationsFor(etscan.RiskLow),
			CreatedAt:       base.Add(time.Duration(i) * time.Second),
			UpdatedAt:       base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Create(context.Background(), scan))
	}
	// 其他用户的记录不得出现在结果中
	other := &etscan.Scan{
		ID: "scan-other", OwnerID: 200, ImagePath: "blob-other",
		Result:          &etscan.Result{Prediction: "Low Risk", Confidence: 80, RiskLevel: etscan.RiskLow},
		Recommendations: recommendationsFor(etscan.RiskLow),
		CreatedAt:       base, UpdatedAt: base,
	}
	require.NoError(t, repo.Create(context.Background(), other))

	seen := make(map[string]bool)
	var collected []*etscan.Scan
	for page := 1; page <= 3; page++ {
		scans, total, pages, err := svc.ListScans(context.Background(), 100, page, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(25), total)
		assert.Equal(t, 3, pages) // ceil(25/10)

		for _, scan := range scans {
			assert.False(t, seen[scan.ID], "duplicate scan %s", scan.ID)
			seen[scan.ID] = true
		}
		collected = append(collected, scans...)
	}

	// 拼接所有页正好覆盖全部记录，且严格按创建时间倒序
	require.Len(t, collected, 25)
	for i := 1; i < len(collected); i++ {
		assert.True(t, collected[i].CreatedAt.Before(collected[i-1].CreatedAt) ||
			collected[i].CreatedAt.Equal(collected[i-1].CreatedAt))
	}
	assert.False(t, seen["scan-other"])
}

func TestListScansDefaultsAndValidation(t *testing.T) {
	repo := newFakeScanRepo()
	svc := newTestService(repo, newFakeBlobStore(), &stubPredictor{}, nil)

	_, _, _, err := svc.ListScans(context.Background(), 100, 0, 0)
	require.NoError(t, err)

	_, _, _, err = svc.ListScans(context.Background(), 100, -1, 10)
	var be *errorx.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 400, be.Code)
}

func seedScan(t *testing.T, repo *fakeScanRepo, store *fakeBlobStore, ownerID int64) *etscan.Scan {
	t.Helper()
	key, err := store.Put(context.Background(), []byte("img"), "lesion.jpg")
	require.NoError(t, err)

	scan, err := etscan.NewScan("scan-1", ownerID, key,
		&etscan.Result{Prediction: "Low Risk", Confidence: 80, RiskLevel: etscan.RiskLow},
		recommendationsFor(etscan.RiskLow))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), scan))
	return scan
}

func TestGetScanOwnership(t *testing.T) {
	repo := newFakeScanRepo()
	store := newFakeBlobStore()
	svc := newTestService(repo, store, &stubPredictor{}, nil)
	seedScan(t, repo, store, 100)

	// 所有者可读
	_, err := svc.GetScan(context.Background(), "scan-1", 100, "user")
	require.NoError(t, err)

	// 管理员可读
	_, err = svc.GetScan(context.Background(), "scan-1", 999, "admin")
	require.NoError(t, err)

	// 其他用户 403
	_, err = svc.GetScan(context.Background(), "scan-1", 200, "user")
	var be *errorx.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 403, be.Code)

	// 未知ID 404
	_, err = svc.GetScan(context.Background(), "missing", 100, "user")
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 404, be.Code)
}

func TestDeleteScanByNonOwnerLeavesEverythingIntact(t *testing.T) {
	repo := newFakeScanRepo()
	store := newFakeBlobStore()
	svc := newTestService(repo, store, &stubPredictor{}, nil)
	seedScan(t, repo, store, 100)

	err := svc.DeleteScan(context.Background(), "scan-1", 200, "user")
	var be *errorx.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 403, be.Code)

	// 记录和图片都不受影响
	_, err = repo.GetByID(context.Background(), "scan-1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.count())
}

func TestDeleteScanByOwnerRemovesRecordAndBlob(t *testing.T) {
	repo := newFakeScanRepo()
	store := newFakeBlobStore()
	svc := newTestService(repo, store, &stubPredictor{}, nil)
	seedScan(t, repo, store, 100)

	require.NoError(t, svc.DeleteScan(context.Background(), "scan-1", 100, "user"))

	_, err := repo.GetByID(context.Background(), "scan-1")
	assert.ErrorIs(t, err, errorx.ErrScanNotFound)
	assert.Equal(t, 0, store.count())
}

func TestDeleteScanByAdmin(t *testing.T) {
	repo := newFakeScanRepo()
	store := newFakeBlobStore()
	svc := newTestService(repo, store, &stubPredictor{}, nil)
	seedScan(t, repo, store, 100)

	require.NoError(t, svc.DeleteScan(context.Background(), "scan-1", 999, "admin"))
}

func TestDeleteScanBlobFailureStillSucceeds(t *testing.T) {
	repo := newFakeScanRepo()
	store := newFakeBlobStore()
	svc := newTestService(repo, store, &stubPredictor{}, nil)
	seedScan(t, repo, store, 100)
	store.deleteErr = errors.New("disk error")

	// 图片删除失败只记孤儿日志，逻辑删除仍然成功
	require.NoError(t, svc.DeleteScan(context.Background(), "scan-1", 100, "user"))
	_, err := repo.GetByID(context.Background(), "scan-1")
	assert.ErrorIs(t, err, errorx.ErrScanNotFound)
}

func TestUpdateNotes(t *testing.T) {
	repo := newFakeScanRepo()
	store := newFakeBlobStore()
	svc := newTestService(repo, store, &stubPredictor{}, nil)
	seedScan(t, repo, store, 100)

	// 空备注拒绝
	_, err := svc.UpdateNotes(context.Background(), "scan-1", 100, "user", "")
	var be *errorx.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 400, be.Code)

	// 非所有者 403
	_, err = svc.UpdateNotes(context.Background(), "scan-1", 200, "user", "looks fine")
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 403, be.Code)

	// 所有者更新成功
	scan, err := svc.UpdateNotes(context.Background(), "scan-1", 100, "user", "itchy since last week")
	require.NoError(t, err)
	assert.Equal(t, "itchy since last week", scan.Notes)

	persisted, err := repo.GetByID(context.Background(), "scan-1")
	require.NoError(t, err)
	assert.Equal(t, "itchy since last week", persisted.Notes)
}
