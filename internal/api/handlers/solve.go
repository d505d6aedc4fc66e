// Package handlers implements the Gin HTTP handlers, adapted from the
// teacher's internal/api/handlers package (one handler type per endpoint
// group, constructed with NewXHandler and holding whatever collaborator
// it needs).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/api/models"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/domain"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/engine"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/evrand"
	"github.com/charlotteesavage/ev-scheduling-dp/internal/progress"
)

// SolveHandler runs an end-to-end solve per request. It holds a progress
// Hub so POST /api/v1/solve can stream DSSR iterations to anyone
// subscribed on /ws/progress while the solve is in flight.
type SolveHandler struct {
	hub *progress.Hub
}

func NewSolveHandler(hub *progress.Hub) *SolveHandler {
	return &SolveHandler{hub: hub}
}

// RunSolve handles POST /api/v1/solve.
func (h *SolveHandler) RunSolve(c *gin.Context) {
	var req models.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	activities, err := activitySetFromPayload(req.Activities)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	params, err := generalParamsFromPayload(req)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	solver, err := engine.NewSolver(activities, params)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if h.hub != nil {
		solver.OnDSSRIteration = func(iteration int, bestUtility float64, cycleFound bool) {
			h.hub.EmitDSSRIteration(progress.DSSRIterationPayload{
				Iteration:   iteration,
				BestUtility: bestUtility,
				CycleFound:  cycleFound,
			})
		}
	}

	initialSoC := req.InitialSoC
	if req.RandomSeed != 0 {
		src := evrand.NewSource(req.RandomSeed)
		initialSoC = src.ClampedSoC(req.InitialSoCMean, req.InitialSoCStdDev)
	}

	sched, err := solver.Solve(initialSoC)
	if serr, ok := err.(*engine.SolveError); ok && serr.Kind == engine.Infeasible {
		if h.hub != nil {
			h.hub.EmitSolveResult(progress.SolveResultPayload{Feasible: false})
		}
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorBody{Code: "INFEASIBLE", Message: serr.Error()},
		})
		return
	}
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if h.hub != nil {
		h.hub.EmitSolveResult(progress.SolveResultPayload{
			Feasible:              true,
			FinalUtility:          sched.FinalUtility,
			StepCount:             len(sched.Steps),
			PossiblyNonElementary: sched.PossiblyNonElementary,
		})
	}

	c.JSON(http.StatusOK, toSolveResponse(sched))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorBody{Code: "BAD_REQUEST", Message: msg},
	})
}

func toSolveResponse(sched *engine.Schedule) models.SolveResponse {
	resp := models.SolveResponse{
		Status:                "ok",
		FinalUtility:          sched.FinalUtility,
		FinalSoC:              sched.FinalSoC,
		PossiblyNonElementary: sched.PossiblyNonElementary,
		Steps:                 make([]models.StepResponse, 0, len(sched.Steps)),
	}
	for _, s := range sched.Steps {
		resp.Steps = append(resp.Steps, models.StepResponse{
			ActivityID:        s.ActivityID,
			Group:             s.Group,
			StartTime:         s.StartTime,
			Duration:          s.Duration,
			SoCStart:          s.SoCStart,
			SoCEnd:            s.SoCEnd,
			ChargeMode:        string(s.ChargeMode),
			ChargeDuration:    s.ChargeDuration,
			ChargeCost:        s.ChargeCost,
			CumulativeUtility: s.CumulativeUtility,
		})
	}
	return resp
}

func activitySetFromPayload(payload []models.ActivityPayload) (domain.ActivitySet, error) {
	acts := make([]domain.Activity, len(payload))
	for i, p := range payload {
		mode := domain.ChargeMode(p.ChargeMode)
		if mode == "" {
			mode = domain.ChargeNone
		}
		acts[i] = domain.Activity{
			ID:               p.ID,
			X:                p.X,
			Y:                p.Y,
			Group:            p.Group,
			EarliestStart:    p.EarliestStart,
			LatestStart:      p.LatestStart,
			MinDuration:      p.MinDuration,
			MaxDuration:      p.MaxDuration,
			DesStartTime:     p.DesStartTime,
			DesDuration:      p.DesDuration,
			ChargeMode:       mode,
			IsCharging:       p.IsCharging,
			IsServiceStation: p.IsServiceStation,
		}
	}
	set := domain.ActivitySet{Activities: acts}
	return set, set.Validate()
}

func generalParamsFromPayload(req models.SolveRequest) (domain.GeneralParams, error) {
	g := req.General
	p := domain.GeneralParams{
		Horizon:              g.Horizon,
		IntervalMinutes:      g.IntervalMinutes,
		SpeedMetersPerMinute: g.SpeedMetersPerMinute,
		TravelTimePenalty:    g.TravelTimePenalty,
		DSSRMaxIterations:    g.DSSRMaxIterations,
		Coefficients: domain.Coefficients{
			ASC:   g.Coefficients.ASC,
			Early: g.Coefficients.Early,
			Late:  g.Coefficients.Late,
			Long:  g.Coefficients.Long,
			Short: g.Coefficients.Short,
		},
		ChargingUtility: domain.ChargingUtility{
			GammaWork:      g.ChargingUtility.GammaWork,
			GammaHome:      g.ChargingUtility.GammaHome,
			GammaNonWork:   g.ChargingUtility.GammaNonWork,
			SoCThreshold:   g.ChargingUtility.SoCThreshold,
			ThetaLowSoC:    g.ChargingUtility.ThetaLowSoC,
			BetaDeltaSoC:   g.ChargingUtility.BetaDeltaSoC,
			BetaChargeCost: g.ChargingUtility.BetaChargeCost,
		},
		Battery: domain.BatteryParams{
			CapacityKWh:         req.Battery.CapacityKWh,
			ConsumptionKWhPerKm: req.Battery.ConsumptionKWhPerKm,
		},
		Tariff: domain.TariffParams{
			PeakStartMin:     req.Tariff.PeakStartMin,
			PeakEndMin:       req.Tariff.PeakEndMin,
			Midpeak1StartMin: req.Tariff.Midpeak1StartMin,
			Midpeak1EndMin:   req.Tariff.Midpeak1EndMin,
			Midpeak2StartMin: req.Tariff.Midpeak2StartMin,
			Midpeak2EndMin:   req.Tariff.Midpeak2EndMin,
			PeakFactor:       req.Tariff.PeakFactor,
			MidpeakFactor:    req.Tariff.MidpeakFactor,
			OffpeakFactor:    req.Tariff.OffpeakFactor,
		},
		Charger: domain.ChargerTable{
			PowerKW: map[domain.ChargeMode]float64{
				domain.ChargeSlow:  req.Charger.SlowKW,
				domain.ChargeFast:  req.Charger.FastKW,
				domain.ChargeRapid: req.Charger.RapidKW,
			},
			PriceHomeSlowPerKWh: req.Charger.PriceHomeSlowPerKWh,
			PriceACPerKWh:       req.Charger.PriceACPerKWh,
			PricePublicDCPerKWh: req.Charger.PricePublicDCPerKWh,
		},
	}
	return p, p.Validate()
}
