package hydraulics

import (
	"fmt"

	"github.com/thatsimonsguy/pompput-sizer/internal/model"
)

// Evaluate runs every stage for one design. A failing stage aborts the run;
// advisories from any stage are collected and later stages still run.
func (e *Engine) Evaluate(d model.Design) (model.DesignResult, error) {
	var res model.DesignResult

	inflow, err := e.EstimateInflow(d.Inflow)
	if err != nil {
		return res, fmt.Errorf("inflow: %w", err)
	}
	res.InflowRateM3S = inflow

	buf, err := CalculateBuffer(d.Pump, d.Geometry, d.Elevations)
	if err != nil {
		return res, fmt.Errorf("buffer: %w", err)
	}
	res.Buffer = buf
	res.Advisories = append(res.Advisories, buf.Advisories...)

	if inflow > buf.CapacityM3S {
		res.Advisories = append(res.Advisories, model.Advisory{
			Kind:    model.AdvisoryInflowExceeds,
			Message: fmt.Sprintf("inflow %.1f l/s exceeds pump capacity %.1f l/s", inflow*1000, buf.CapacityM3S*1000),
		})
	}

	hl, err := e.CalculateHeadLoss(buf.CapacityM3S, d.Pipe, d.Fittings, d.CheckValve)
	if err != nil {
		return res, fmt.Errorf("head loss: %w", err)
	}
	res.HeadLoss = hl

	maxV := d.MaxVelocity
	if maxV == 0 {
		maxV = DefaultMaxVelocity
	}
	minD, err := RecommendDiameter(buf.CapacityM3S, maxV)
	if err != nil {
		return res, fmt.Errorf("diameter advice: %w", err)
	}
	res.Diameter = model.DiameterAdvice{MaxVelocityMS: maxV, MinDiameterM: minD}
	if dn, ok := e.NominalDiameterFor(minD); ok {
		res.Diameter.NominalDiameterMM = dn
	} else {
		res.Advisories = append(res.Advisories, model.Advisory{
			Kind:    model.AdvisoryNoNominalFits,
			Message: fmt.Sprintf("no tabulated pipe diameter reaches the required %.0f mm", minD*1000),
		})
	}

	return res, nil
}
