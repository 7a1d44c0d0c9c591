// Package hdf5 records simulation frames to HDF5 files and loads them
// back for offline playback.
package hdf5

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sbinet/go-hdf5"

	msim "github.com/progDes007/m-sim"
)

// A Record is what is stored for each particle at each step. The structure
// is mapped to a compound datatype in HDF5, so member names are important.
type Record struct {
	Pos   msim.Vec2 // position
	Vel   msim.Vec2 // velocity
	Class uint8     // particle class id
}

// A Dataset stipulates how to extract data from a frame and where to
// store them in the HDF5 file.
type Dataset struct {
	// Name is the name of the dataset in the HDF5 file.
	Name string

	// Val is a value of the same concrete type as the underlying type
	// of the data.
	Val interface{}

	// Dims are the dimensions of the data for a single frame. Empty
	// dims mean one scalar per frame.
	Dims []int

	// Data extracts the data from a frame, as a pointer to a scalar or
	// to a row-major slice.
	Data func(f msim.Frame) interface{}

	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// DefaultDatasets returns the datasets every recording carries: the full
// particle state per step plus the simulated time and total kinetic
// energy trajectories.
func DefaultDatasets(numParticles int) []*Dataset {
	return []*Dataset{
		{
			Name: "particles",
			Val:  Record{},
			Dims: []int{numParticles},
			Data: func(f msim.Frame) interface{} {
				records := make([]Record, len(f.Particles))
				for i, p := range f.Particles {
					records[i] = Record{Pos: p.Position, Vel: p.Velocity, Class: uint8(p.Class())}
				}
				return &records
			},
		},
		{
			Name: "times",
			Val:  float64(0),
			Data: func(f msim.Frame) interface{} { return &f.Time },
		},
		{
			Name: "energy",
			Val:  float64(0),
			Data: func(f msim.Frame) interface{} { return &f.Stats.TotalEnergy },
		},
	}
}

// Config holds the parameters of the HDF5 recording driver.
type Config struct {
	Output   string     // path of output file
	Frames   int        // total number of frames to record
	Datasets []*Dataset // list of datasets
}

// Run drains the frame channel into an HDF5 file, writing one hyperslab
// per frame for every configured dataset.
func Run(frames <-chan msim.Frame, conf *Config) (err error) {
	if err := os.MkdirAll(filepath.Dir(conf.Output), 0755); err != nil {
		return err
	}

	file, err := hdf5.CreateFile(conf.Output, hdf5.F_ACC_TRUNC)
	if err != nil {
		return err
	}
	defer checkClose(&err, file)

	if err := saveConfig(file); err != nil {
		return err
	}

	for _, d := range conf.Datasets {
		if err := d.init(file, conf); err != nil {
			return err
		}
		defer checkClose(&err, d)
	}

	k := uint(0)
	for f := range frames {
		if k >= uint(conf.Frames) {
			break
		}
		// show progress as percentage
		fmt.Printf("\r% 3d%%", 100*k/uint(conf.Frames))

		for _, d := range conf.Datasets {
			start := make([]uint, len(d.Dims)+1)
			start[0] = k
			if err := d.fspace.SetOffset(start); err != nil {
				return err
			}
			if err := d.dset.WriteSubset(d.Data(f), d.mspace, d.fspace); err != nil {
				return err
			}
		}
		k++
	}
	fmt.Printf("\r100%%\n")
	return nil
}

// saveConfig creates a "config" dataset with a null dataspace whose
// attributes hold recording metadata.
func saveConfig(file *hdf5.File) (err error) {
	null, err := hdf5.CreateDataspace(hdf5.S_NULL)
	if err != nil {
		return err
	}

	anytype, err := hdf5.NewDatatypeFromValue(0)
	if err != nil {
		return err
	}
	defer checkClose(&err, anytype)

	dset, err := file.CreateDataset("config", anytype, null)
	if err != nil {
		return err
	}
	defer checkClose(&err, dset)

	dtype, err := hdf5.NewDatatypeFromValue("")
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	scalar, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}

	attr, err := dset.CreateAttribute("Time", dtype, scalar)
	if err != nil {
		return err
	}
	defer checkClose(&err, attr)

	now := time.Now().String()
	return attr.Write(&now, dtype)
}

// init creates the dataset in the file.
func (d *Dataset) init(file *hdf5.File, conf *Config) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(d.Val)
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	udims := make([]uint, len(d.Dims)+1)
	udims[0] = uint(conf.Frames)
	for i, n := range d.Dims {
		udims[i+1] = uint(n)
	}

	d.fspace, err = hdf5.CreateSimpleDataspace(udims, nil)
	if err != nil {
		return err
	}

	start := make([]uint, len(udims))
	count := make([]uint, len(udims))
	copy(count, udims)
	count[0] = 1

	if err := d.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	if len(d.Dims) == 0 {
		d.mspace, err = hdf5.CreateDataspace(hdf5.S_SCALAR)
	} else {
		d.mspace, err = hdf5.CreateSimpleDataspace(udims[1:], nil)
	}
	if err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	d.dset, err = file.CreateDataset(d.Name, dtype, d.fspace)
	if err != nil {
		checkClose(&err, d.fspace)
		checkClose(&err, d.mspace)
	}

	return err
}

// Close closes the HDF5 dataset and dataspaces.
func (d *Dataset) Close() error {
	if err := d.dset.Close(); err != nil {
		return err
	}
	if err := d.mspace.Close(); err != nil {
		return err
	}
	return d.fspace.Close()
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}
