package sentiment

import (
	"context"
	"sync/atomic"

	"github.com/yildizm/sentimoji/internal/ai"
)

// fakeClassifier records calls and optionally blocks until released
type fakeClassifier struct {
	result     ai.Classifications
	err        error
	missingKey bool
	calls      int32
	started    chan struct{}
	release    chan struct{}
}

func (f *fakeClassifier) Name() string  { return "fake" }
func (f *fakeClassifier) Model() string { return "fake/model" }
func (f *fakeClassifier) Close() error  { return nil }

func (f *fakeClassifier) ValidateConfig() error {
	if f.missingKey {
		return ai.NewCredentialMissingError("fake")
	}
	return nil
}

func (f *fakeClassifier) Classify(ctx context.Context, req *ai.AnalysisRequest) (ai.Classifications, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.result, f.err
}

func (f *fakeClassifier) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}
