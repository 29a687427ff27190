// converts csv digit files to matrices the network can train on
package main

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const (
	imgSize    int = 784 // 28x28
	numClasses int = 10  // 0->9
)

// readCSV loads a label-first csv digit file: each line is the class index
// followed by imgSize pixel values in 0-255. Pixels are scaled to [0, 1].
func readCSV(fileName string) (*mat.Dense, []int, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Couldn't open %q\n", fileName)
	}
	defer file.Close()

	var features []float64
	var labels []int

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for line := 1; scanner.Scan(); line++ {
		strs := strings.Split(scanner.Text(), ",")
		if len(strs) != imgSize+1 {
			return nil, nil, errors.Errorf("Line %d of %q has %d values; expected %d", line, fileName, len(strs), imgSize+1)
		}

		lbl, err := strconv.Atoi(strs[0])
		if err != nil {
			return nil, nil, errors.Wrapf(err, "Bad label on line %d of %q\n", line, fileName)
		} else if lbl < 0 || lbl >= numClasses {
			return nil, nil, errors.Errorf("Label %d on line %d of %q is out of range", lbl, line, fileName)
		}

		labels = append(labels, lbl)

		for i := 1; i <= imgSize; i++ {
			v, err := strconv.ParseFloat(strs[i], 64)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "Bad pixel %d on line %d of %q\n", i, line, fileName)
			}

			features = append(features, v/255)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrapf(err, "Reading %q failed\n", fileName)
	} else if len(labels) == 0 {
		return nil, nil, errors.Errorf("%q has no examples", fileName)
	}

	return mat.NewDense(len(labels), imgSize, features), labels, nil
}
