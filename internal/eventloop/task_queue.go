package eventloop

const minQueueCapacity = 16

// taskQueue is a FIFO of tasks stored in a ring.
// Cancelled tasks stay queued until they reach the front. When the ring is
// full, they are compacted away before the ring grows.
type taskQueue struct {
	ring []*Task
	head int
	n    int
}

// Len returns the number of queued tasks, including cancelled ones.
func (q *taskQueue) Len() int { return q.n }

func (q *taskQueue) Push(t *Task) {
	if q.n == len(q.ring) {
		q.makeRoom()
	}
	q.ring[(q.head+q.n)%len(q.ring)] = t
	q.n++
}

// Next dequeues tasks until it finds one that was not cancelled.
// It returns nil if no runnable task is queued.
func (q *taskQueue) Next() *Task {
	for q.n > 0 {
		t := q.ring[q.head]
		q.ring[q.head] = nil
		q.head = (q.head + 1) % len(q.ring)
		q.n--
		if !t.cancelled {
			return t
		}
	}
	return nil
}

// makeRoom drops cancelled tasks. The ring only grows if more than three
// quarters of it are still in use afterwards.
func (q *taskQueue) makeRoom() {
	var live int
	for i := 0; i < q.n; i++ {
		if !q.at(i).cancelled {
			live++
		}
	}
	size := len(q.ring)
	switch {
	case size == 0:
		size = minQueueCapacity
	case live > size*3/4:
		size *= 2
	}
	ring := make([]*Task, size)
	var j int
	for i := 0; i < q.n; i++ {
		if t := q.at(i); !t.cancelled {
			ring[j] = t
			j++
		}
	}
	q.ring, q.head, q.n = ring, 0, j
}

func (q *taskQueue) at(i int) *Task { return q.ring[(q.head+i)%len(q.ring)] }

func (q *taskQueue) Clear() {
	clear(q.ring)
	q.head, q.n = 0, 0
}
