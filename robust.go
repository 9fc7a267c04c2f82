/*
Package robust provides the exact and robust arithmetic kernel underlying
geometric distance and intersection queries. It contains a bit-precision
estimator for arbitrary-precision number and rational types, software
interval arithmetic with outward-rounded endpoints, univariate polynomial
arithmetic with bisection-based real-root isolation, and the
root-isolation-based distance queries (circle-circle and line-circle in 3D)
that rely on them.
*/
package robust
