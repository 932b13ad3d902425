// Package stats derives the dashboard views from an owner's records. Every
// function is a pure reduction over already-fetched, owner-scoped slices.
package stats

import (
	"sort"
	"strings"
	"time"

	"bjjtracker/internal/models"
)

// Chart labels, in the wording the client renders.
var (
	MasteryLabels     = []string{"Débutant", "Intermédiaire", "Compétent", "Avancé", "Expert"}
	PerformanceLabels = []string{"Or", "Argent", "Bronze", "Participation"}

	categoryLabels = map[string]string{
		"guard":        "Garde",
		"pass":         "Passage",
		"mount":        "Mont",
		"back":         "Dos",
		"side-control": "Contrôle Latéral",
		"submission":   "Soumission",
		"transition":   "Transition",
		"sweep":        "Balayage",
		"takedown":     "Projection",
		"escape":       "Échappement",
	}
)

// Series is a chart-ready pair of parallel arrays.
type Series struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

type TrainingTotals struct {
	Total      int `json:"total"`
	TotalHours int `json:"totalHours"`
}

type TechniqueTotals struct {
	Total      int     `json:"total"`
	AvgMastery float64 `json:"avgMastery"`
}

type Medals struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

type CompetitionTotals struct {
	Total  int    `json:"total"`
	Medals Medals `json:"medals"`
}

// Overview is the dashboard headline.
type Overview struct {
	Trainings    TrainingTotals    `json:"trainings"`
	Techniques   TechniqueTotals   `json:"techniques"`
	Competitions CompetitionTotals `json:"competitions"`
}

// ComputeOverview counts every collection; empty inputs give zeros.
func ComputeOverview(trainings []models.Training, techniques []models.Technique, competitions []models.Competition) Overview {
	var o Overview

	minutes := 0
	for _, t := range trainings {
		minutes += t.Duration
	}
	o.Trainings.Total = len(trainings)
	o.Trainings.TotalHours = int(ratio(minutes, 60, 0))

	mastery := 0
	for _, t := range techniques {
		mastery += t.MasteryLevel
	}
	o.Techniques.Total = len(techniques)
	o.Techniques.AvgMastery = ratio(mastery, len(techniques), 1)

	o.Competitions.Total = len(competitions)
	for _, c := range competitions {
		switch c.Result {
		case "gold":
			o.Competitions.Medals.Gold++
		case "silver":
			o.Competitions.Medals.Silver++
		case "bronze":
			o.Competitions.Medals.Bronze++
		}
	}
	return o
}

// TrainingFrequency counts sessions dated at or after since, per calendar day
// in loc. Days without sessions are omitted; labels are chronological.
func TrainingFrequency(trainings []models.Training, since time.Time, loc *time.Location, layout string) Series {
	inWindow := make([]models.Training, 0, len(trainings))
	for _, t := range trainings {
		if !t.Date.Before(since) {
			inWindow = append(inWindow, t)
		}
	}
	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].Date.Before(inWindow[j].Date)
	})

	s := Series{Labels: []string{}, Data: []int{}}
	index := make(map[string]int)
	for _, t := range inWindow {
		key := t.Date.In(loc).Format(layout)
		i, ok := index[key]
		if !ok {
			i = len(s.Labels)
			index[key] = i
			s.Labels = append(s.Labels, key)
			s.Data = append(s.Data, 0)
		}
		s.Data[i]++
	}
	return s
}

// MasteryDistribution is a dense histogram over mastery levels 1..5.
func MasteryDistribution(techniques []models.Technique) Series {
	data := make([]int, len(MasteryLabels))
	for _, t := range techniques {
		if t.MasteryLevel >= 1 && t.MasteryLevel <= len(data) {
			data[t.MasteryLevel-1]++
		}
	}
	return Series{Labels: append([]string(nil), MasteryLabels...), Data: data}
}

// CompetitionPerformance is a dense histogram over final results; pending
// entries are left out.
func CompetitionPerformance(competitions []models.Competition) Series {
	order := map[string]int{"gold": 0, "silver": 1, "bronze": 2, "participation": 3}
	data := make([]int, len(PerformanceLabels))
	for _, c := range competitions {
		if i, ok := order[c.Result]; ok {
			data[i]++
		}
	}
	return Series{Labels: append([]string(nil), PerformanceLabels...), Data: data}
}

// TechniqueCategories counts techniques per category, skipping empty
// categories and keeping the canonical category order.
func TechniqueCategories(techniques []models.Technique) Series {
	counts := make(map[string]int, len(models.TechniqueCategories))
	for _, t := range techniques {
		counts[t.Category]++
	}

	s := Series{Labels: []string{}, Data: []int{}}
	for _, cat := range models.TechniqueCategories {
		if n := counts[cat]; n > 0 {
			s.Labels = append(s.Labels, categoryLabels[cat])
			s.Data = append(s.Data, n)
		}
	}
	return s
}

type BeltStep struct {
	Belt     string `json:"belt"`
	Achieved bool   `json:"achieved"`
}

type BeltProgression struct {
	CurrentBelt string     `json:"currentBelt"`
	Stripes     int        `json:"stripes"`
	Progression []BeltStep `json:"progression"`
}

// ComputeBeltProgression lists every rank up to the current one. It only
// reflects the current profile; promotion dates are not recorded.
func ComputeBeltProgression(p models.Profile) BeltProgression {
	bp := BeltProgression{CurrentBelt: p.Belt, Stripes: p.Stripes, Progression: []BeltStep{}}
	for _, belt := range models.Belts {
		bp.Progression = append(bp.Progression, BeltStep{Belt: capitalize(belt), Achieved: true})
		if belt == p.Belt {
			return bp
		}
	}
	// unknown rank
	bp.Progression = []BeltStep{}
	return bp
}

// TrainingSummary backs GET /trainings/stats.
type TrainingSummary struct {
	TotalSessions            int            `json:"totalSessions"`
	TotalDuration            int            `json:"totalDuration"`
	TotalSubmissionsGiven    int            `json:"totalSubmissionsGiven"`
	TotalSubmissionsReceived int            `json:"totalSubmissionsReceived"`
	AveragePhysicalFeeling   float64        `json:"averagePhysicalFeeling"`
	AverageMentalFeeling     float64        `json:"averageMentalFeeling"`
	TypeDistribution         map[string]int `json:"typeDistribution"`
}

func SummarizeTrainings(trainings []models.Training) TrainingSummary {
	s := TrainingSummary{TotalSessions: len(trainings), TypeDistribution: map[string]int{}}
	physical, mental := 0, 0
	for _, t := range trainings {
		s.TotalDuration += t.Duration
		s.TotalSubmissionsGiven += t.SubmissionsGiven
		s.TotalSubmissionsReceived += t.SubmissionsReceived
		physical += t.PhysicalFeeling
		mental += t.MentalFeeling
		s.TypeDistribution[t.Type]++
	}
	s.AveragePhysicalFeeling = ratio(physical, len(trainings), 1)
	s.AverageMentalFeeling = ratio(mental, len(trainings), 1)
	return s
}

// ratio rounds num/den half-up to the given decimal places using integer
// arithmetic. A zero denominator gives 0. Inputs are non-negative.
func ratio(num, den, places int) float64 {
	if den == 0 {
		return 0
	}
	scale := 1
	for i := 0; i < places; i++ {
		scale *= 10
	}
	q := (2*num*scale + den) / (2 * den)
	return float64(q) / float64(scale)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
