package fastlog

import (
	"go.uber.org/zap"

	"github.com/fx-kirin/fast-log/internal/queue"
)

// pipeline owns the two in-memory stages that decouple producers from
// I/O: an ingest worker that buffers records until a Flush arrives,
// and a sink worker that formats and fans a record out to every
// appender. Producers only ever touch ingestQ.Push, which is
// non-blocking.
type pipeline struct {
	ingestQ *queue.Unbounded[*Record]
	sinkQ   *queue.Unbounded[*Record]
	wg      *WaitGroup

	formatter Formatter
	appenders []Appender
}

func newPipeline(appenders []Appender, formatter Formatter) *pipeline {
	p := &pipeline{
		ingestQ:   queue.New[*Record](),
		sinkQ:     queue.New[*Record](),
		wg:        newWaitGroup(),
		formatter: formatter,
		appenders: appenders,
	}
	go p.runIngest()
	go p.runSink()
	return p
}

// runIngest is the ingest worker. It buffers every ordinary record in
// memory and only forwards them to the sink stage when a Flush control
// record arrives. This means records are not visible to any appender -
// including the file-backed ones - until an explicit flush() call;
// callers that need durability must flush periodically. An Exit is
// forwarded on its own: records still buffered when it arrives are
// dropped.
func (p *pipeline) runIngest() {
	defer p.wg.done()

	buf := make([]*Record, 0, 64)
	for {
		r, ok := p.ingestQ.Pop()
		if !ok {
			return
		}

		switch r.Command {
		case CommandExit:
			p.sinkQ.Push(r)
			return

		case CommandFlush:
			for _, buffered := range buf {
				p.sinkQ.Push(buffered)
			}
			buf = buf[:0]
			p.sinkQ.Push(r)

		default:
			buf = append(buf, r)
		}
	}
}

// runSink is the sink worker. It is the sole mutator of appender
// state, so appenders never need to synchronize against themselves.
func (p *pipeline) runSink() {
	defer p.wg.done()

	for {
		r, ok := p.sinkQ.Pop()
		if !ok {
			return
		}

		if r.Command == CommandExit {
			return
		}

		if r.Command == CommandRecord {
			p.formatter.Format(r)
		}

		for _, a := range p.appenders {
			if err := a.DoLog(r); err != nil {
				diagLogger().Warn("appender failed; record dropped", zap.Error(err))
			}
		}
	}
}
