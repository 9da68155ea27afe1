package pipeline

import (
	"fmt"

	"github.com/KaramelBytes/fifaviz-cli/internal/analysis"
	"github.com/KaramelBytes/fifaviz-cli/internal/dataset"
	"github.com/KaramelBytes/fifaviz-cli/internal/render"
)

// Output file names, fixed.
const (
	FileSkillByAge     = "line_chart_skill_by_age.png"
	FileValueByAge     = "line_graph_value_by_age.png"
	FileSkillHistogram = "histogram_skill_distribution.png"
	FileFootPie        = "pie_chart_preferred_foot.png"
	FileWeightPie      = "pie_chart_weight_distribution.png"
	FileClubBox        = "box_plot_club_skill.png"
)

// TopClubs is how many of the largest clubs the box plot compares.
const TopClubs = 5

// Chart is one figure of the run. Build only reads from the dataset.
type Chart struct {
	File  string
	Build func(ds *dataset.Dataset, opt render.Options) ([]byte, error)
}

// Charts returns the six figures in run order.
func Charts() []Chart {
	return []Chart{
		{File: FileSkillByAge, Build: skillByAge},
		{File: FileValueByAge, Build: valueByAge},
		{File: FileSkillHistogram, Build: skillHistogram},
		{File: FileFootPie, Build: footPie},
		{File: FileWeightPie, Build: weightPie},
		{File: FileClubBox, Build: clubBox},
	}
}

func meanByAge(ds *dataset.Dataset, col string) (xs, ys []float64, err error) {
	ages, err := ds.Floats(dataset.ColAge)
	if err != nil {
		return nil, nil, err
	}
	vals, err := ds.Floats(col)
	if err != nil {
		return nil, nil, err
	}
	for _, g := range analysis.MeanBy(ages, vals) {
		xs = append(xs, g.Key)
		ys = append(ys, g.Mean)
	}
	return xs, ys, nil
}

func skillByAge(ds *dataset.Dataset, opt render.Options) ([]byte, error) {
	xs, ys, err := meanByAge(ds, dataset.ColOverall)
	if err != nil {
		return nil, err
	}
	return render.Line(render.LineSpec{
		Labels: render.Labels{
			Title:  "Average FIFA Player Overall Skill by Age",
			XLabel: "Age",
			YLabel: "Average Overall Skill",
		},
		X:      xs,
		Y:      ys,
		Color:  "#4B8BBE",
		Marker: render.MarkerCircle,
	}, opt)
}

func valueByAge(ds *dataset.Dataset, opt render.Options) ([]byte, error) {
	xs, ys, err := meanByAge(ds, dataset.ColValue)
	if err != nil {
		return nil, err
	}
	return render.Line(render.LineSpec{
		Labels: render.Labels{
			Title:  "Average FIFA Player Value by Age",
			XLabel: "Age",
			YLabel: "Average Value (€M)",
		},
		X:      xs,
		Y:      ys,
		Color:  "#FF6F61",
		Marker: render.MarkerSquare,
	}, opt)
}

func skillHistogram(ds *dataset.Dataset, opt render.Options) ([]byte, error) {
	overall, err := ds.Floats(dataset.ColOverall)
	if err != nil {
		return nil, err
	}
	return render.Histogram(render.HistSpec{
		Labels: render.Labels{
			Title:  "FIFA Overall Skill Distribution",
			XLabel: "Overall Skill Score",
			YLabel: "Number of Players",
		},
		Values: analysis.Finite(overall),
		Bins:   20,
		Color:  "#6A9C89",
	}, opt)
}

func pieSlices(counts []analysis.CategoryCount) []render.Slice {
	pct := analysis.Percentages(counts)
	out := make([]render.Slice, len(counts))
	for i, c := range counts {
		out[i] = render.Slice{Label: c.Value, Count: float64(c.Count), Percent: pct[i]}
	}
	return out
}

func footPie(ds *dataset.Dataset, opt render.Options) ([]byte, error) {
	feet, err := ds.Strings(dataset.ColPreferredFoot)
	if err != nil {
		return nil, err
	}
	return render.Pie(render.PieSpec{
		Title:   "FIFA Players Preferred Foot Distribution",
		Slices:  pieSlices(analysis.ValueCounts(feet)),
		Palette: []string{"#4B8BBE", "#FF6F61"},
	}, opt)
}

func weightPie(ds *dataset.Dataset, opt render.Options) ([]byte, error) {
	if !ds.Cleaned() {
		return nil, fmt.Errorf("weight categories require a cleaned dataset")
	}
	cats, err := ds.Strings(dataset.ColWeightCategory)
	if err != nil {
		return nil, err
	}
	return render.Pie(render.PieSpec{
		Title:   "FIFA Players Weight Distribution",
		Slices:  pieSlices(analysis.ValueCounts(cats)),
		Palette: []string{"#6A9C89", "#FF6F61", "#4B8BBE"},
	}, opt)
}

func clubBox(ds *dataset.Dataset, opt render.Options) ([]byte, error) {
	clubs, err := ds.Strings(dataset.ColClub)
	if err != nil {
		return nil, err
	}
	top := analysis.Labels(analysis.TopN(analysis.ValueCounts(clubs), TopClubs))
	sub, err := ds.FilterClubs(top)
	if err != nil {
		return nil, err
	}
	subClubs, err := sub.Strings(dataset.ColClub)
	if err != nil {
		return nil, err
	}
	subOverall, err := sub.Floats(dataset.ColOverall)
	if err != nil {
		return nil, err
	}
	return render.Box(render.BoxSpec{
		Labels: render.Labels{
			Title:  "FIFA Player Overall Skill by Club",
			XLabel: "Club",
			YLabel: "Overall Skill Score",
		},
		Groups:  top,
		Values:  analysis.GroupValues(subClubs, subOverall, top),
		Palette: []string{"#4B8BBE", "#FF6F61", "#6A9C89", "#FFD166", "#9B59B6"},
	}, opt)
}
