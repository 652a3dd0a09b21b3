package ball

// Store is the ordered collection of live particles. Insertion order is
// the collision scan order, so it is never reshuffled.
type Store struct {
	particles []*Particle
}

// Append adds particles at the end of the store.
func (st *Store) Append(ps ...*Particle) {
	st.particles = append(st.particles, ps...)
}

// Clear drops every particle.
func (st *Store) Clear() {
	clear(st.particles)
	st.particles = st.particles[:0]
}

// Len returns the number of particles.
func (st *Store) Len() int {
	return len(st.particles)
}

// IsEmpty reports whether the store holds no particles.
func (st *Store) IsEmpty() bool {
	return len(st.particles) == 0
}

// At returns the i-th particle in insertion order.
func (st *Store) At(i int) *Particle {
	return st.particles[i]
}

// Particles exposes the backing slice. Callers must not append to it.
func (st *Store) Particles() []*Particle {
	return st.particles
}
