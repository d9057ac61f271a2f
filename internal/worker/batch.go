package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/symptomatic/internal/model"
	"github.com/ppiankov/symptomatic/internal/pipeline"
)

// maxLineBytes bounds a single JSONL request line
const maxLineBytes = 1 << 20

// Predictor defines the interface for running one prediction
type Predictor interface {
	Predict(ctx context.Context, req model.PredictionRequest) (*pipeline.PredictResult, error)
}

// PredictJob represents one prediction request
type PredictJob struct {
	Request   model.PredictionRequest
	Predictor Predictor
	Limiter   *Limiter
	Delay     time.Duration // pause after acquiring a token
}

// Execute executes the prediction job
func (j *PredictJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.WaitWithDelay(ctx, j.Delay); err != nil {
			return &PredictOutcome{Request: j.Request, Error: fmt.Errorf("rate limit: %w", err)}
		}
	}

	res, err := j.Predictor.Predict(ctx, j.Request)
	if err != nil {
		return &PredictOutcome{Request: j.Request, Error: err}
	}
	return &PredictOutcome{
		Request: j.Request,
		Result:  &res.Result,
		Cached:  res.Cached,
	}
}

// PredictOutcome represents the result of a prediction job
type PredictOutcome struct {
	Request model.PredictionRequest
	Result  *model.PredictionResult
	Cached  bool
	Error   error
}

// GetError returns the error from the outcome
func (o *PredictOutcome) GetError() error {
	return o.Error
}

// BatchProcessor runs many prediction requests concurrently
type BatchProcessor struct {
	predictor   Predictor
	concurrency int
	limiter     *Limiter
	delay       time.Duration
}

// NewBatchProcessor creates a new batch processor. A non-positive
// requestsPerSecond disables rate limiting.
func NewBatchProcessor(predictor Predictor, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, burst)
	}
	return &BatchProcessor{
		predictor:   predictor,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// WithDelay makes every job pause for d after acquiring its rate token.
// The pause holds the worker, so it also paces batches without a rate.
func (b *BatchProcessor) WithDelay(d time.Duration) *BatchProcessor {
	b.delay = d
	if d > 0 && b.limiter == nil {
		b.limiter = NewLimiter(0, 0)
	}
	return b
}

// ProcessRequests runs reqs concurrently and returns one outcome per
// request, in input order
func (b *BatchProcessor) ProcessRequests(ctx context.Context, reqs []model.PredictionRequest) []*PredictOutcome {
	if len(reqs) == 0 {
		return []*PredictOutcome{}
	}

	// Create worker pool
	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submit jobs
	for _, req := range reqs {
		pool.Submit(&PredictJob{
			Request:   req,
			Predictor: b.predictor,
			Limiter:   b.limiter,
			Delay:     b.delay,
		})
	}

	// Wait for all jobs to complete
	results := pool.Wait()

	outcomes := make([]*PredictOutcome, len(reqs))
	for i := range reqs {
		if i < len(results) && results[i] != nil {
			outcomes[i] = results[i].(*PredictOutcome)
			continue
		}
		// Never ran: the context ended first
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		outcomes[i] = &PredictOutcome{Request: reqs[i], Error: err}
	}

	return outcomes
}

// ProcessFile reads requests from a JSONL file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*PredictOutcome, error) {
	reqs, err := ReadRequestsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}

	return b.ProcessRequests(ctx, reqs), nil
}

// ReadRequestsFromFile reads requests from a JSONL file (one JSON object per line)
func ReadRequestsFromFile(filePath string) ([]model.PredictionRequest, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadRequests(file)
}

// ReadRequests decodes JSONL requests. Blank lines and lines starting with
// '#' are skipped. Requests without an ID get their line number.
func ReadRequests(r io.Reader) ([]model.PredictionRequest, error) {
	var reqs []model.PredictionRequest

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var req model.PredictionRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if req.ID == "" {
			req.ID = strconv.Itoa(lineNo)
		}
		reqs = append(reqs, req)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return reqs, nil
}

// Record is one line of batch output
type Record struct {
	ID     string                  `json:"id"`
	Cached bool                    `json:"cached,omitempty"`
	Result *model.PredictionResult `json:"result,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

// WriteResults encodes outcomes as JSONL, one Record per line
func WriteResults(w io.Writer, outcomes []*PredictOutcome) error {
	enc := json.NewEncoder(w)
	for _, o := range outcomes {
		rec := Record{ID: o.Request.ID, Cached: o.Cached, Result: o.Result}
		if o.Error != nil {
			rec.Error = o.Error.Error()
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode %s: %w", rec.ID, err)
		}
	}
	return nil
}
