package control

import "sync"

// Queue is a bounded FIFO shared by connection goroutines and the frame
// loop. A push onto a full queue evicts the oldest command, so a burst of
// requests never stalls the sender and the most recent intent wins.
type Queue struct {
	mu      sync.Mutex
	buf     []Command
	head    int
	n       int
	dropped int
}

func NewQueue(capacity int) *Queue {
	return &Queue{buf: make([]Command, max(capacity, 1))}
}

// Push appends c, evicting the oldest command when full.
func (q *Queue) Push(c Command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.n == len(q.buf) {
		q.head = (q.head + 1) % len(q.buf)
		q.n--
		q.dropped++
	}
	q.buf[(q.head+q.n)%len(q.buf)] = c
	q.n++
}

// Drain appends every pending command to dst in arrival order and empties
// the queue. It never blocks on a producer.
func (q *Queue) Drain(dst []Command) []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	for ; q.n > 0; q.n-- {
		dst = append(dst, q.buf[q.head])
		q.head = (q.head + 1) % len(q.buf)
	}
	return dst
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.n
}

// Dropped counts commands evicted by overflow.
func (q *Queue) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
