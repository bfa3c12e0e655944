// febasis is a small inspection tool for the element library: it
// constructs an element and prints its metadata or tabulated basis values.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/femtools/febasis/cell"
	"github.com/femtools/febasis/element"
	"gonum.org/v1/gonum/mat"
)

var (
	cellName string
	degree   int
	npoints  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "febasis",
		Short: "Inspect Raviart-Thomas finite elements on reference simplices",
	}
	rootCmd.PersistentFlags().StringVar(&cellName, "cell", "triangle", "reference cell (triangle, tetrahedron)")
	rootCmd.PersistentFlags().IntVar(&degree, "degree", 1, "element degree k >= 1")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Print element metadata",
		Run: func(cmd *cobra.Command, args []string) {
			fe := buildElement()
			fmt.Printf("cell:          %s\n", fe.CellType())
			fmt.Printf("degree:        %d\n", fe.Degree()+1)
			fmt.Printf("value size:    %d\n", fe.ValueSize())
			fmt.Printf("dof count:     %d\n", fe.NumDofs())
		},
	}

	tabulateCmd := &cobra.Command{
		Use:   "tabulate",
		Short: "Print basis values on an interior lattice of the reference cell",
		Run: func(cmd *cobra.Command, args []string) {
			fe := buildElement()
			pts := latticePoints(fe.CellType(), npoints)
			tab, err := fe.Tabulate(pts)
			if err != nil {
				log.Fatal(err)
			}
			np, _ := pts.Dims()
			tdim := fe.ValueSize()
			ndofs := fe.NumDofs()
			for p := 0; p < np; p++ {
				fmt.Printf("point (")
				for j := 0; j < tdim; j++ {
					if j > 0 {
						fmt.Printf(", ")
					}
					fmt.Printf("%.4f", pts.At(p, j))
				}
				fmt.Printf("):\n")
				for j := 0; j < ndofs; j++ {
					fmt.Printf("  basis %2d: [", j)
					for c := 0; c < tdim; c++ {
						if c > 0 {
							fmt.Printf(", ")
						}
						fmt.Printf("% .6e", tab.At(p, c*ndofs+j))
					}
					fmt.Printf("]\n")
				}
			}
		},
	}
	tabulateCmd.Flags().IntVar(&npoints, "points", 3, "lattice points per axis")

	rootCmd.AddCommand(infoCmd, tabulateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildElement() *element.FiniteElement {
	var ct cell.Type
	switch cellName {
	case "triangle":
		ct = cell.Triangle
	case "tetrahedron", "tet":
		ct = cell.Tetrahedron
	default:
		log.Fatalf("unknown cell %q", cellName)
	}
	fe, err := element.NewRaviartThomas(ct, degree)
	if err != nil {
		log.Fatal(err)
	}
	return fe
}

// latticePoints returns a strictly interior lattice of the reference
// simplex with n points per axis.
func latticePoints(ct cell.Type, n int) *mat.Dense {
	if n < 1 {
		log.Fatalf("lattice needs at least one point per axis, got %d", n)
	}
	if ct == cell.Triangle {
		h := 1.0 / float64(n+2)
		var rows []float64
		for i := 1; i <= n; i++ {
			for j := 1; i+j <= n+1; j++ {
				rows = append(rows, float64(i)*h, float64(j)*h)
			}
		}
		return mat.NewDense(len(rows)/2, 2, rows)
	}

	h := 1.0 / float64(n+3)
	var rows []float64
	for i := 1; i <= n; i++ {
		for j := 1; i+j <= n+1; j++ {
			for k := 1; i+j+k <= n+2; k++ {
				rows = append(rows, float64(i)*h, float64(j)*h, float64(k)*h)
			}
		}
	}
	return mat.NewDense(len(rows)/3, 3, rows)
}
