package backend

import "io"

// progressReader reports upload progress as an integer percent. The
// reported sequence is monotonically non-decreasing and reaches 100
// exactly when the whole payload has been consumed.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	last  int
	cb    func(percent int)
}

func newProgressReader(r io.Reader, total int64, cb func(int)) *progressReader {
	return &progressReader{r: r, total: total, cb: cb}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.total > 0 && p.cb != nil {
		p.read += int64(n)
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct > p.last {
			p.last = pct
			p.cb(pct)
		}
	}
	return n, err
}

// finish emits the terminal 100 if the size hint under-counted.
func (p *progressReader) finish() {
	if p.cb != nil && p.last < 100 {
		p.last = 100
		p.cb(100)
	}
}
