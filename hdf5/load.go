package hdf5

import (
	"fmt"

	"github.com/sbinet/go-hdf5"

	msim "github.com/progDes007/m-sim"
)

// A Loader sequentially loads recorded frames from an HDF5 file.
type Loader struct {
	i uint // index of current frame
	n uint // total number of frames

	data  []Record  // per-particle buffer
	times []float64 // simulated time of every frame

	file   *hdf5.File
	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// NewLoader opens a recording and returns an initialized loader.
func NewLoader(path string) (*Loader, error) {
	l := new(Loader)
	var err error
	l.file, err = hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	l.dset, err = l.file.OpenDataset("particles")
	if err != nil {
		checkClose(&err, l.file)
		return nil, err
	}
	l.fspace = l.dset.Space()
	dims, _, err := l.fspace.SimpleExtentDims()
	if err != nil {
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, err
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("hdf5: expected 2 dimensions, got %d", len(dims))
	}
	l.n = dims[0]

	l.mspace, err = hdf5.CreateSimpleDataspace(dims[1:], nil)
	if err != nil {
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, err
	}

	start := []uint{0, 0}
	count := []uint{1, dims[1]}
	if err := l.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		checkClose(&err, l.mspace)
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, err
	}

	l.data = make([]Record, dims[1])

	if err := l.loadTimes(); err != nil {
		checkClose(&err, l.mspace)
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, err
	}

	return l, nil
}

// loadTimes reads the whole simulated-time trajectory at once.
func (l *Loader) loadTimes() error {
	dset, err := l.file.OpenDataset("times")
	if err != nil {
		return err
	}
	defer dset.Close()
	l.times = make([]float64, l.n)
	return dset.Read(&l.times)
}

// NumFrames returns the number of frames in the recording.
func (l *Loader) NumFrames() int {
	return int(l.n)
}

// LoadFrame overwrites f with the next recorded frame, cycling back to
// the first frame after the last one. Frame statistics are not stored in
// the file; the caller rebuilds them from its class table if needed.
func (l *Loader) LoadFrame(f *msim.Frame) error {
	start := []uint{l.i, 0}
	if err := l.fspace.SetOffset(start); err != nil {
		return err
	}
	if err := l.dset.ReadSubset(&l.data, l.mspace, l.fspace); err != nil {
		return err
	}
	f.Time = l.times[l.i]
	l.i = (l.i + 1) % l.n

	f.Particles = f.Particles[:0]
	for _, r := range l.data {
		f.Particles = append(f.Particles, msim.NewParticle(r.Pos, r.Vel, msim.ClassID(r.Class)))
	}
	f.Stats = msim.Statistics{}
	return nil
}

// Close closes the underlying HDF5 objects.
func (l *Loader) Close() (err error) {
	checkClose(&err, l.mspace)
	checkClose(&err, l.fspace)
	checkClose(&err, l.dset)
	checkClose(&err, l.file)
	return err
}
