package cache

import (
	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
)

// playerRowDTO is the shared-cache encoding of kpi.PlayerRow. A nil pointer
// is a missing field.
type playerRowDTO struct {
	Name     *string `json:"name,omitempty"`
	Club     *string `json:"club,omitempty"`
	Position *string `json:"position,omitempty"`

	PtsAvg  *float64 `json:"pts_avg,omitempty"`
	BaseAvg *float64 `json:"base_avg,omitempty"`

	ADPPosAvg  *int64 `json:"adp_pos_avg,omitempty"`
	ADPPosBase *int64 `json:"adp_pos_base,omitempty"`
	ADPGenAvg  *int64 `json:"adp_gen_avg,omitempty"`
	ADPGenBase *int64 `json:"adp_gen_base,omitempty"`

	DVSPosAvg  *float64 `json:"dvs_pos_avg,omitempty"`
	DVSPosBase *float64 `json:"dvs_pos_base,omitempty"`
	DVSGenAvg  *float64 `json:"dvs_gen_avg,omitempty"`
	DVSGenBase *float64 `json:"dvs_gen_base,omitempty"`

	ZScorePosAvg  *float64 `json:"z_score_pos_avg,omitempty"`
	ZScorePosBase *float64 `json:"z_score_pos_base,omitempty"`
	ZScoreGenAvg  *float64 `json:"z_score_gen_avg,omitempty"`
	ZScoreGenBase *float64 `json:"z_score_gen_base,omitempty"`

	Availability   *float64 `json:"availability,omitempty"`
	MatchesCounted *int64   `json:"matches_counted,omitempty"`

	Scouts map[string]*float64 `json:"scouts,omitempty"`
}

type scoutCodeDTO struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Points      float64 `json:"points"`
}

func ptr[T any](o kpi.Optional[T]) *T {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return &v
}

func opt[T any](p *T) kpi.Optional[T] {
	if p == nil {
		return kpi.None[T]()
	}
	return kpi.Some(*p)
}

func rowsToDTO(rows []kpi.PlayerRow) []playerRowDTO {
	out := make([]playerRowDTO, 0, len(rows))
	for _, row := range rows {
		dto := playerRowDTO{
			Name:           ptr(row.Name),
			Club:           ptr(row.Club),
			Position:       ptr(row.Position),
			PtsAvg:         ptr(row.PtsAvg),
			BaseAvg:        ptr(row.BaseAvg),
			ADPPosAvg:      ptr(row.ADPPosAvg),
			ADPPosBase:     ptr(row.ADPPosBase),
			ADPGenAvg:      ptr(row.ADPGenAvg),
			ADPGenBase:     ptr(row.ADPGenBase),
			DVSPosAvg:      ptr(row.DVSPosAvg),
			DVSPosBase:     ptr(row.DVSPosBase),
			DVSGenAvg:      ptr(row.DVSGenAvg),
			DVSGenBase:     ptr(row.DVSGenBase),
			ZScorePosAvg:   ptr(row.ZScorePosAvg),
			ZScorePosBase:  ptr(row.ZScorePosBase),
			ZScoreGenAvg:   ptr(row.ZScoreGenAvg),
			ZScoreGenBase:  ptr(row.ZScoreGenBase),
			Availability:   ptr(row.Availability),
			MatchesCounted: ptr(row.MatchesCounted),
		}
		if len(row.Scouts) > 0 {
			dto.Scouts = make(map[string]*float64, len(row.Scouts))
			for code, avg := range row.Scouts {
				dto.Scouts[code] = ptr(avg)
			}
		}
		out = append(out, dto)
	}
	return out
}

func rowsFromDTO(items []playerRowDTO) []kpi.PlayerRow {
	out := make([]kpi.PlayerRow, 0, len(items))
	for _, dto := range items {
		row := kpi.PlayerRow{
			Name:           opt(dto.Name),
			Club:           opt(dto.Club),
			Position:       opt(dto.Position),
			PtsAvg:         opt(dto.PtsAvg),
			BaseAvg:        opt(dto.BaseAvg),
			ADPPosAvg:      opt(dto.ADPPosAvg),
			ADPPosBase:     opt(dto.ADPPosBase),
			ADPGenAvg:      opt(dto.ADPGenAvg),
			ADPGenBase:     opt(dto.ADPGenBase),
			DVSPosAvg:      opt(dto.DVSPosAvg),
			DVSPosBase:     opt(dto.DVSPosBase),
			DVSGenAvg:      opt(dto.DVSGenAvg),
			DVSGenBase:     opt(dto.DVSGenBase),
			ZScorePosAvg:   opt(dto.ZScorePosAvg),
			ZScorePosBase:  opt(dto.ZScorePosBase),
			ZScoreGenAvg:   opt(dto.ZScoreGenAvg),
			ZScoreGenBase:  opt(dto.ZScoreGenBase),
			Availability:   opt(dto.Availability),
			MatchesCounted: opt(dto.MatchesCounted),
		}
		if len(dto.Scouts) > 0 {
			row.Scouts = make(map[string]kpi.Optional[float64], len(dto.Scouts))
			for code, avg := range dto.Scouts {
				row.Scouts[code] = opt(avg)
			}
		}
		out = append(out, row)
	}
	return out
}

func codesToDTO(codes []scout.Code) []scoutCodeDTO {
	out := make([]scoutCodeDTO, 0, len(codes))
	for _, c := range codes {
		out = append(out, scoutCodeDTO{Code: c.Code, Description: c.Description, Points: c.Points})
	}
	return out
}

func codesFromDTO(items []scoutCodeDTO) []scout.Code {
	out := make([]scout.Code, 0, len(items))
	for _, c := range items {
		out = append(out, scout.Code{Code: c.Code, Description: c.Description, Points: c.Points})
	}
	return out
}
