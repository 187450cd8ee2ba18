package reminder

// Done is closed once the scheduler stops watching its context.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}
