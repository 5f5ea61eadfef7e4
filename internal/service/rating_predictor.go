package service

import (
	"github.com/trahulprabhu38/major-project-sub000/internal/model"
	"github.com/trahulprabhu38/major-project-sub000/pkg/logger"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// PredictorFeatures describes one (student, resource) pair for rating
// prediction.
type PredictorFeatures struct {
	ResourceID          uint
	COIndex             int
	Difficulty          int
	ResourceType        int
	DurationMin         int
	StudentInteractions int
	ResourcePopularity  int
}

// RatingPredictor estimates a normalized rating in [0,1] for a resource.
// ok is false when the predictor has nothing to say about this input, in
// which case the caller keeps the plain neighbor average.
type RatingPredictor interface {
	Predict(f PredictorFeatures) (float64, bool)
}

// NeighborAverage is the always-available predictor: the mean normalized
// score the selected neighbors gave the resource.
type NeighborAverage struct {
	Sums   map[uint]float64
	Counts map[uint]int
}

func (p *NeighborAverage) Predict(f PredictorFeatures) (float64, bool) {
	n := p.Counts[f.ResourceID]
	if n == 0 {
		return 0, false
	}
	return p.Sums[f.ResourceID] / float64(n), true
}

// LearnedRegressor fits a least-squares linear model over the aggregated
// interaction log and predicts ratings from resource and student features.
// Only trained when the log has at least the gated number of rows; below
// the gate TrainRegressor returns nil and the caller silently keeps the
// neighbor average.
type LearnedRegressor struct {
	coeffs []float64
}

const regressorFeatureCount = 7 // 截距 + 6个特征

// TrainRegressor builds the learned predictor from aggregated rows.
// Returns nil (no error) when below minSamples or when the system is
// singular: the learned path is an enhancement, never a requirement.
func TrainRegressor(rows []AggregatedInteraction, catalog []model.Resource, minSamples int) *LearnedRegressor {
	if len(rows) < minSamples {
		logger.Log.Debug("not enough samples to train rating regressor",
			zap.Int("samples", len(rows)), zap.Int("required", minSamples))
		return nil
	}

	resourceByID := make(map[uint]model.Resource, len(catalog))
	for _, r := range catalog {
		resourceByID[r.ID] = r
	}

	popularity := make(map[uint]int)
	perStudent := make(map[string]int)
	for _, row := range rows {
		popularity[row.ResourceID]++
		perStudent[row.USN] += row.Count
	}

	var features []float64
	var targets []float64
	for _, row := range rows {
		res, ok := resourceByID[row.ResourceID]
		if !ok {
			continue
		}
		features = append(features,
			1,
			float64(model.COIndex(res.CO)),
			float64(res.Difficulty.Rank()),
			float64(res.Type.TypeIndex()),
			float64(res.EstimatedTimeMin),
			float64(perStudent[row.USN]),
			float64(popularity[row.ResourceID]),
		)
		targets = append(targets, row.Score)
	}

	n := len(targets)
	if n < minSamples || n < regressorFeatureCount {
		return nil
	}

	X := mat.NewDense(n, regressorFeatureCount, features)
	y := mat.NewDense(n, 1, targets)

	var qr mat.QR
	qr.Factorize(X)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, y); err != nil {
		logger.Log.Debug("rating regressor solve failed, keeping neighbor average", zap.Error(err))
		return nil
	}

	coeffs := make([]float64, regressorFeatureCount)
	for i := range coeffs {
		coeffs[i] = beta.At(i, 0)
	}
	return &LearnedRegressor{coeffs: coeffs}
}

func (p *LearnedRegressor) Predict(f PredictorFeatures) (float64, bool) {
	if p == nil || len(p.coeffs) != regressorFeatureCount {
		return 0, false
	}
	x := []float64{
		1,
		float64(f.COIndex),
		float64(f.Difficulty),
		float64(f.ResourceType),
		float64(f.DurationMin),
		float64(f.StudentInteractions),
		float64(f.ResourcePopularity),
	}
	sum := 0.0
	for i, c := range p.coeffs {
		sum += c * x[i]
	}
	return clamp01(sum), true
}

// featuresFor builds the prediction input for a resource.
// studentInteractions is the target student's aggregated interaction count,
// the same quantity the regressor saw per row at training time; a student
// who never touched a resource contributes zero.
func featuresFor(res model.Resource, rows []AggregatedInteraction, studentInteractions int) PredictorFeatures {
	popularity := 0
	for _, row := range rows {
		if row.ResourceID == res.ID {
			popularity++
		}
	}
	return PredictorFeatures{
		ResourceID:          res.ID,
		COIndex:             model.COIndex(res.CO),
		Difficulty:          res.Difficulty.Rank(),
		ResourceType:        res.Type.TypeIndex(),
		DurationMin:         res.EstimatedTimeMin,
		StudentInteractions: studentInteractions,
		ResourcePopularity:  popularity,
	}
}
