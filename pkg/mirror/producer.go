package mirror

import (
	"context"
	"image"
	"sync"

	"github.com/nfnt/resize"
	"github.com/sidecast/sidecast/pkg/capture"
	"github.com/sidecast/sidecast/pkg/config"
	"github.com/sidecast/sidecast/pkg/cursor"
	"github.com/sidecast/sidecast/pkg/encoder"
	"github.com/sidecast/sidecast/pkg/logger"
)

// workers is the size of the produce pool. Two lets a session overlap
// the next capture with the current send without piling up buffers.
const workers = 2

type job struct {
	ctx   context.Context
	reply chan []byte
}

// Producer runs the capture, overlay, encode cycle for the shared
// screen region on a small worker pool.
type Producer struct {
	backend capture.Backend
	pointer cursor.Query
	codec   encoder.Codec
	quality *encoder.Quality
	region  capture.Region
	scale   float64
	jobs    chan job
	done    chan struct{}
	wg      sync.WaitGroup
	stats   *stats
	log     *logger.Logger
}

// NewProducer opens a capture backend for the region and spins up the
// worker pool. The first frame is grabbed right away so that a broken
// capture environment fails the construction instead of every cycle.
func NewProducer(conf config.Config, region capture.Region, log *logger.Logger) (*Producer, error) {
	backend := capture.NewBackend(conf.Capture.Backend, region, conf.Capture.Fps, workers, log)
	if _, err := backend.AcquireFrame(0); err != nil {
		_ = backend.Close()
		return nil, err
	}
	quality := encoder.NewQuality(
		conf.Encoder.Quality,
		conf.Encoder.MinQuality,
		conf.Capture.Fps,
		conf.Encoder.BandwidthKBps,
		conf.Encoder.AdaptiveEnabled(),
	)
	return newProducer(backend, cursor.NewQuery(), encoder.NewJPEG(), quality, region, conf.Capture.Scale, log), nil
}

func newProducer(backend capture.Backend, pointer cursor.Query, codec encoder.Codec,
	quality *encoder.Quality, region capture.Region, scale float64, log *logger.Logger) *Producer {
	p := &Producer{
		backend: backend,
		pointer: pointer,
		codec:   codec,
		quality: quality,
		region:  region,
		scale:   scale,
		jobs:    make(chan job),
		done:    make(chan struct{}),
		stats:   newStats(),
		log:     log,
	}
	for slot := 0; slot < workers; slot++ {
		p.wg.Add(1)
		go p.worker(slot)
	}
	return p
}

// ProduceAsync schedules one frame cycle on the pool. The returned
// channel always delivers exactly one payload, which is empty when no
// frame was ready, the cycle failed, or ctx was cancelled first.
func (p *Producer) ProduceAsync(ctx context.Context) <-chan []byte {
	reply := make(chan []byte, 1)
	select {
	case p.jobs <- job{ctx: ctx, reply: reply}:
	case <-ctx.Done():
		reply <- nil
	case <-p.done:
		reply <- nil
	}
	return reply
}

func (p *Producer) worker(slot int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case job := <-p.jobs:
			if job.ctx.Err() != nil {
				job.reply <- nil
				continue
			}
			job.reply <- p.produce(slot)
		}
	}
}

// produce runs one full cycle. An empty result means the frame was
// skipped, never that the stream is broken.
func (p *Producer) produce(slot int) []byte {
	frame, err := p.backend.AcquireFrame(slot)
	if err != nil {
		p.log.Error().Err(err).Msg("capture failed")
		return nil
	}
	if frame == nil {
		return nil
	}
	if p.scale < 1.0 {
		w, h := p.region.Scaled(p.scale)
		frame = resize.Resize(uint(w), uint(h), frame, resize.NearestNeighbor).(*image.RGBA)
	}
	if pos, ok := p.pointer.Position(); ok {
		cursor.Draw(frame, pos, p.region.Origin(), p.scale)
	}
	data, err := p.codec.Encode(frame, p.quality.Value())
	if err != nil {
		p.log.Error().Err(err).Msg("encode failed")
		return nil
	}
	p.quality.Adjust(float64(len(data)) / 1024)
	if fps, avgKB, ok := p.stats.add(len(data)); ok {
		p.log.Debug().Msgf("stream %5.1f fps, %6.1f KB/frame, q=%v", fps, avgKB, p.quality.Value())
	}
	return data
}

// Quality reports the current encode quality level.
func (p *Producer) Quality() int { return p.quality.Value() }

// Backend names the capture strategy in use.
func (p *Producer) Backend() string { return p.backend.Name() }

// Region returns the desktop rectangle being captured.
func (p *Producer) Region() capture.Region { return p.region }

// Close stops the pool, waits for in-flight cycles, and releases the
// capture backend.
func (p *Producer) Close() {
	close(p.done)
	p.wg.Wait()
	_ = p.pointer.Close()
	if err := p.backend.Close(); err != nil {
		p.log.Error().Err(err).Msg("capture backend close failed")
	}
}
