package InputParameters

import (
	"fmt"
	"io"
	"os"

	"github.com/ghodss/yaml"
	"github.com/go-playground/validator/v10"
	"github.com/minicfd/gocfd1d/types"
)

// Parameters obtained from the YAML input file. ghodss/yaml goes through
// encoding/json, so the keys are the json tags.
type InputParameters1D struct {
	Title           string  `json:"Title"`
	Model           string  `json:"Model" validate:"oneof=advection burgers euler maxwell"`
	Case            string  `json:"Case"`
	Method          string  `json:"Method" validate:"oneof=DG FR"`
	PolynomialOrder int     `json:"PolynomialOrder" validate:"gte=0,lte=12"`
	Cells           int     `json:"Cells" validate:"gte=1"`
	XMin            float64 `json:"XMin"`
	XMax            float64 `json:"XMax"`
	CFL             float64 `json:"CFL" validate:"gt=0"`
	TStart          float64 `json:"TStart" validate:"gte=0"`
	TStop           float64 `json:"TStop" validate:"gtfield=TStart"`
	NFrames         int     `json:"NFrames" validate:"gte=1"`
	StepsPerFrame   int     `json:"StepsPerFrame" validate:"gte=1"`
	IFramePrev      int     `json:"IFramePrev" validate:"gte=-1"`
	TimeScheme      string  `json:"TimeScheme"`
	FluxType        string  `json:"FluxType"`
	Gamma           float64 `json:"Gamma" validate:"gt=1"`
	Speed           float64 `json:"Speed"`
	Nu              float64 `json:"Nu" validate:"gte=0"`
	Correction      string  `json:"Correction" validate:"omitempty,oneof=DG Huynh SD"`
	Limiter         string  `json:"Limiter" validate:"omitempty,oneof=none lazy eigen minmod average majority"`
	TroubleDetector string  `json:"TroubleDetector" validate:"omitempty,oneof=all notsmooth"`
	Viscosity       string  `json:"Viscosity" validate:"omitempty,oneof=none constant persson"`
	ArtificialNu    float64 `json:"ArtificialNu" validate:"gte=0"`
	Kappa           float64 `json:"Kappa" validate:"gte=0"`
	ParallelDegree  int     `json:"ParallelDegree" validate:"gte=0"`
	OutputDir       string  `json:"OutputDir"`
	SamplesPerCell  int     `json:"SamplesPerCell" validate:"gte=2"`
	// LeftBC and RightBC name the tube end conditions, empty is smart
	LeftBC  string `json:"LeftBC,omitempty"`
	RightBC string `json:"RightBC,omitempty"`
}

// NewInputParameters1D is a P = 2 DG Sod tube.
func NewInputParameters1D() *InputParameters1D {
	return &InputParameters1D{
		Title:           "Sod shock tube",
		Model:           "euler",
		Case:            "sod",
		Method:          "DG",
		PolynomialOrder: 2,
		Cells:           100,
		XMin:            0,
		XMax:            1,
		CFL:             0.5,
		TStart:          0,
		TStop:           0.2,
		NFrames:         10,
		StepsPerFrame:   1,
		IFramePrev:      -1,
		TimeScheme:      "SspRungeKutta3",
		FluxType:        "HLLC",
		Gamma:           1.4,
		Speed:           1,
		Correction:      "Huynh",
		Limiter:         "eigen",
		TroubleDetector: "notsmooth",
		Viscosity:       "none",
		ArtificialNu:    0.01,
		Kappa:           2,
		OutputDir:       "output",
		SamplesPerCell:  5,
	}
}

// Parse overlays data on the receiver, so unset keys keep their values.
func (ip *InputParameters1D) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return fmt.Errorf("unable to parse input parameters: %w", err)
	}
	return ip.Validate()
}

func (ip *InputParameters1D) ReadFile(fileName string) (err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return fmt.Errorf("unable to read input file %s: %w", fileName, err)
	}
	return ip.Parse(data)
}

func (ip *InputParameters1D) Validate() error {
	if err := validator.New().Struct(ip); err != nil {
		return fmt.Errorf("invalid input parameters: %w", err)
	}
	if ip.Method == "FR" && ip.PolynomialOrder < 1 {
		return fmt.Errorf("invalid input parameters: FR needs PolynomialOrder >= 1")
	}
	for _, name := range []string{ip.LeftBC, ip.RightBC} {
		if name == "" {
			continue
		}
		if _, err := types.ParseBCName(name); err != nil {
			return fmt.Errorf("invalid input parameters: %w", err)
		}
	}
	return nil
}

func (ip *InputParameters1D) Write(w io.Writer) error {
	data, err := yaml.Marshal(ip)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (ip *InputParameters1D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s/%s]\t\t= Model/Case\n", ip.Model, ip.Case)
	fmt.Printf("[%s]\t\t\t= Method\n", ip.Method)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", ip.PolynomialOrder)
	fmt.Printf("[%d]\t\t\t\t= Cells\n", ip.Cells)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("[%8.5f, %8.5f]\t= Time span\n", ip.TStart, ip.TStop)
	fmt.Printf("[%d x %d]\t\t\t= Frames x Steps\n", ip.NFrames, ip.StepsPerFrame)
	fmt.Printf("[%s]\t\t= Time Scheme\n", ip.TimeScheme)
	if ip.Model == "euler" {
		fmt.Printf("[%s]\t\t\t= Flux Type\n", ip.FluxType)
	}
	fmt.Printf("[%s/%s]\t= Limiter/Detector\n", ip.Limiter, ip.TroubleDetector)
	fmt.Printf("[%s]\t\t\t= Viscosity\n", ip.Viscosity)
}
