/*
Package liphe is a generic arithmetic layer for homomorphic encryption: algorithms
are written once against the number.Number interface and run unchanged on
plaintext residues, real values, arbitrary precision values or BGV ciphertexts.

It provides depth tracking (depth), interchangeable comparison strategies
(compare), cached indicator polynomials (polynomial), a binomial tournament
reducer (tournament) and a branch-free first-non-zero search (search).
*/
package liphe
